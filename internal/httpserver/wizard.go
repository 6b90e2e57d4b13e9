package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
	wizardsvc "github.com/addictedsalas/project-printing-sub000/internal/service/wizard"
)

type stepRequest struct {
	Step int `json:"step" binding:"required,min=1,max=4"`
}

type modalRequest struct {
	Open *bool `json:"open" binding:"required"`
}

type sizeCategoryRequest struct {
	SizeCategory domain.SizeCategory `json:"sizeCategory" binding:"required,oneof=adult youth"`
}

func (h *handlers) startSession(c *gin.Context) {
	res, err := h.wizard.Start(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *handlers) getSession(c *gin.Context) {
	sess, err := h.wizard.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess})
}

func (h *handlers) updateForm(c *gin.Context) {
	var item domain.OrderLineItem
	if !bindJSON(c, &item, "invalid form payload") {
		return
	}
	h.respond(c)(h.wizard.UpdateForm(c.Request.Context(), c.Param("id"), item))
}

func (h *handlers) setStep(c *gin.Context) {
	var req stepRequest
	if !bindJSON(c, &req, "step must be between 1 and 4") {
		return
	}
	h.respond(c)(h.wizard.SetStep(c.Request.Context(), c.Param("id"), req.Step))
}

func (h *handlers) setModal(c *gin.Context) {
	var req modalRequest
	if !bindJSON(c, &req, "open is required") {
		return
	}
	h.respond(c)(h.wizard.SetModalOpen(c.Request.Context(), c.Param("id"), *req.Open))
}

func (h *handlers) setSizeCategory(c *gin.Context) {
	var req sizeCategoryRequest
	if !bindJSON(c, &req, "sizeCategory must be adult or youth") {
		return
	}
	h.respond(c)(h.wizard.SetSizeCategory(c.Request.Context(), c.Param("id"), req.SizeCategory))
}

// action adapts a bodiless wizard action to a handler.
func (h *handlers) action(fn func(WizardService, context.Context, string) (*wizardsvc.Result, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.respond(c)(fn(h.wizard, c.Request.Context(), c.Param("id")))
	}
}

func (h *handlers) respond(c *gin.Context) func(*wizardsvc.Result, error) {
	return func(res *wizardsvc.Result, err error) {
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
