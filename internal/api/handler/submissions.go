package handler

import (
	"net/http"
	"smartsociety/backend/internal/complaint"
	"smartsociety/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// registerSubmissions mounts the five workflow routes of kind under g.
func (h *Handler) registerSubmissions(g *gin.RouterGroup, kind models.Kind) {
	path := "/" + string(kind) + "s"
	g.POST(path, h.submit(kind))
	g.GET(path, h.list(kind))
	g.GET(path+"/:id", h.detail(kind))
	g.PUT(path+"/:id", h.edit(kind))
	g.DELETE(path+"/:id", h.remove(kind))
}

type recordURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// recordID returns the :id parameter. Ids that cannot name a record are
// answered with not found before any lookup.
func (h *Handler) recordID(c *gin.Context) (string, bool) {
	var uri recordURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": h.message(c, "submission.not_found")})
		return "", false
	}
	return uri.ID, true
}

func (h *Handler) bindInput(c *gin.Context) (complaint.Input, bool) {
	var in complaint.Input
	ok := h.bindJSON(c, &in)
	return in, ok
}

func (h *Handler) submit(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := h.bindInput(c)
		if !ok {
			return
		}
		rec, err := h.Submissions.Submit(c.Request.Context(), currentProfile(c), kind, in)
		if err != nil {
			h.abortWithError(c, kind, err, string(kind)+".submit_failed")
			return
		}
		c.JSON(http.StatusCreated, rec)
	}
}

func (h *Handler) list(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := h.Submissions.List(c.Request.Context(), currentSession(c).UID, kind)
		if err != nil {
			h.abortWithError(c, kind, err, "submission.load_failed")
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

func (h *Handler) detail(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.recordID(c)
		if !ok {
			return
		}
		d, err := h.Submissions.FetchDetail(c.Request.Context(), currentSession(c).UID, kind, id)
		if err != nil {
			h.abortWithError(c, kind, err, "submission.load_failed")
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

func (h *Handler) edit(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.recordID(c)
		if !ok {
			return
		}
		in, ok := h.bindInput(c)
		if !ok {
			return
		}
		rec, err := h.Submissions.Edit(c.Request.Context(), currentSession(c).UID, kind, id, in)
		if err != nil {
			h.abortWithError(c, kind, err, "submission.update_failed")
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func (h *Handler) remove(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.recordID(c)
		if !ok {
			return
		}
		if err := h.Submissions.Delete(c.Request.Context(), currentSession(c).UID, kind, id); err != nil {
			h.abortWithError(c, kind, err, "submission.delete_failed")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// Dashboard returns the resident's summary.
func (h *Handler) Dashboard(c *gin.Context) {
	summary, err := h.Dashboards.Dashboard(c.Request.Context(), currentSession(c).UID)
	if err != nil {
		h.abortWithError(c, "", err, "submission.load_failed")
		return
	}
	c.JSON(http.StatusOK, summary)
}
