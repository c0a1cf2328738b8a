package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stake-plus/nameguard/src/records"
)

type Records struct{ Store records.Store }

type recordInput struct {
	ObjectType string `json:"object_type" binding:"required"`
	ObjectID   string `json:"object_id" binding:"required"`
	ObjectName string `json:"object_name"`
	ServerName string `json:"server_name"`
}

// GET /v1/servers/:server/records/:type
func (h Records) List(c *gin.Context) {
	t, err := records.ParseObjectType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	recs, err := h.Store.ListByTypeAndServer(c.Request.Context(), t, c.Param("server"))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "list failed"})
		return
	}
	if recs == nil {
		recs = []records.ConfigRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"records": recs})
}

// POST /v1/servers/:server/records
func (h Records) Create(c *gin.Context) {
	var req struct {
		Records []recordInput `json:"records" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad payload"})
		return
	}

	server := c.Param("server")
	recs := make([]records.ConfigRecord, 0, len(req.Records))
	for _, in := range req.Records {
		t, err := records.ParseObjectType(in.ObjectType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
			return
		}
		recs = append(recs, records.ConfigRecord{
			ObjectType:        t,
			DiscordObjectID:   in.ObjectID,
			DiscordObjectName: in.ObjectName,
			DiscordServerID:   server,
			DiscordServerName: in.ServerName,
		})
	}

	added, err := h.Store.AddRecords(c.Request.Context(), recs)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "some records were not added", "added": added})
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

// DELETE /v1/servers/:server/records/:type/:object
func (h Records) Delete(c *gin.Context) {
	t, err := records.ParseObjectType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if err := h.Store.RemoveRecord(c.Request.Context(), t, c.Param("object"), c.Param("server")); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "delete failed"})
		return
	}
	c.Status(http.StatusNoContent)
}
