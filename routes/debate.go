package routes

import (
	"errors"
	"net/http"

	"debatesim/internal/debate"
	"debatesim/models"
	"debatesim/services"
	"debatesim/utils"

	"github.com/gin-gonic/gin"
)

var (
	manager *debate.Manager
	catalog []models.Topic
)

// Setup registers the debate API on the router.
func Setup(router *gin.Engine, m *debate.Manager, topics []models.Topic) {
	manager = m
	catalog = topics

	router.GET("/topics", GetTopicsRouteHandler)
	router.POST("/sessions", CreateSessionRouteHandler)
	router.GET("/sessions/:id", GetSessionRouteHandler)
	router.DELETE("/sessions/:id", DeleteSessionRouteHandler)
	router.POST("/sessions/:id/messages", PostMessageRouteHandler)
	router.POST("/sessions/:id/pause", PauseSessionRouteHandler)
	router.POST("/sessions/:id/resume", ResumeSessionRouteHandler)
	router.POST("/sessions/:id/speed", SetSpeedRouteHandler)
	router.POST("/sessions/:id/modal", SetModalRouteHandler)
	router.POST("/sessions/:id/restart", RestartSessionRouteHandler)
	router.GET("/sessions/:id/stats", GetStatsRouteHandler)
	router.GET("/sessions/:id/export", ExportSessionRouteHandler)
}

func lookupSession(c *gin.Context) (*debate.Session, bool) {
	session, ok := manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil, false
	}
	return session, true
}

// GetTopicsRouteHandler lists the built-in topic catalog.
func GetTopicsRouteHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"topics": catalog})
}

// CreateSessionRouteHandler starts a debate on the chosen topic.
func CreateSessionRouteHandler(c *gin.Context) {
	var request struct {
		TopicID int `json:"topicId"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	topic, ok := utils.TopicByID(catalog, request.TopicID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Topic not found"})
		return
	}

	session := manager.Create(topic)
	c.JSON(http.StatusCreated, gin.H{
		"sessionId": session.ID,
		"topic":     session.Topic(),
		"messages":  session.Messages(),
		"state":     session.State(),
	})
}

// GetSessionRouteHandler returns the current transcript and control state.
func GetSessionRouteHandler(c *gin.Context) {
	session, ok := lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.ID,
		"topic":     session.Topic(),
		"messages":  session.Messages(),
		"state":     session.State(),
		"typing":    session.Typing(),
	})
}

// DeleteSessionRouteHandler removes a session and stops its pacing.
func DeleteSessionRouteHandler(c *gin.Context) {
	if !manager.Remove(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session removed"})
}

// PostMessageRouteHandler appends a user interjection to the transcript.
func PostMessageRouteHandler(c *gin.Context) {
	session, ok := lookupSession(c)
	if !ok {
		return
	}

	var request struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	msg, err := session.SendUserMessage(request.Content)
	switch {
	case errors.Is(err, debate.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is empty"})
		return
	case errors.Is(err, debate.ErrTranscriptFull):
		c.JSON(http.StatusConflict, gin.H{"error": "Message limit reached"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// PauseSessionRouteHandler suspends automatic pacing.
func PauseSessionRouteHandler(c *gin.Context) {
	session, ok := lookupSession(c)
	if !ok {
		return
	}
	session.SetPaused(true)
	c.JSON(http.StatusOK, gin.H{"state": session.State()})
}

// ResumeSessionRouteHandler resumes automatic pacing.
func ResumeSessionRouteHandler(c *gin.Context) {
	session, ok := lookupSession(c)
	if !ok {
		return
	}
	session.SetPaused(false)
	c.JSON(http.StatusOK, gin.H{"state": session.State()})
}

// SetSpeedRouteHandler selects a speed entry, or cycles to the next one when
// no index is given.
func SetSpeedRouteHandler(c *gin.Context) {
	session, ok := lookupSession(c)
	if !ok {
		return
	}

	var request struct {
		Index *int `json:"index"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if request.Index == nil {
		speed := session.ToggleSpeed()
		c.JSON(http.StatusOK, gin.H{"speed": speed.Label, "state": session.State()})
		return
	}
	if err := session.SetSpeedIndex(*request.Index); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Speed index out of range"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"speed": session.Speed().Label, "state": session.State()})
}

// SetModalRouteHandler opens or closes a pacing-blocking dialog.
func SetModalRouteHandler(c *gin.Context) {
	session, ok := lookupSession(c)
	if !ok {
		return
	}

	var request struct {
		Modal string `json:"modal"`
		Open  bool   `json:"open"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	modal, err := debate.ParseModal(request.Modal)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown modal"})
		return
	}
	session.SetModal(modal, request.Open)
	c.JSON(http.StatusOK, gin.H{"state": session.State()})
}

// RestartSessionRouteHandler reseeds the debate, optionally on a new topic.
func RestartSessionRouteHandler(c *gin.Context) {
	session, ok := lookupSession(c)
	if !ok {
		return
	}

	var request struct {
		TopicID *int `json:"topicId"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if request.TopicID == nil {
		session.Restart()
	} else {
		topic, found := utils.TopicByID(catalog, *request.TopicID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Topic not found"})
			return
		}
		session.ChangeTopic(topic)
	}
	c.JSON(http.StatusOK, gin.H{
		"topic":    session.Topic(),
		"messages": session.Messages(),
		"state":    session.State(),
	})
}

// GetStatsRouteHandler returns the stats panel summary.
func GetStatsRouteHandler(c *gin.Context) {
	session, ok := lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.Stats())
}

// ExportSessionRouteHandler downloads a transcript snapshot.
func ExportSessionRouteHandler(c *gin.Context) {
	session, ok := lookupSession(c)
	if !ok {
		return
	}

	opts := services.DefaultExportOptions()
	if format := c.Query("format"); format != "" {
		opts.Format = format
	}
	opts.IncludeTimestamps = queryFlag(c, "timestamps", opts.IncludeTimestamps)
	opts.IncludeSenderNames = queryFlag(c, "senders", opts.IncludeSenderNames)
	opts.IncludeTypingIndicators = queryFlag(c, "indicators", opts.IncludeTypingIndicators)
	opts.IncludeUserMessages = queryFlag(c, "userMessages", opts.IncludeUserMessages)

	result, err := services.ExportTranscript(session.Topic().Title, session.User().Name, session.Messages(), opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown export format"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

func queryFlag(c *gin.Context, name string, fallback bool) bool {
	switch c.Query(name) {
	case "true", "1":
		return true
	case "false", "0":
		return false
	}
	return fallback
}
