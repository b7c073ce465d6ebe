package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vivaha-be/internal/models"
	"vivaha-be/internal/service"
)

// CollectionController serves one wedding collection (guests, budget lines,
// todos, vendors or seating tables) as a REST resource.
type CollectionController[T any] struct {
	service service.CollectionService[T]
	noun    string // used in messages, e.g. "Guest"
}

func NewCollectionController[T any](svc service.CollectionService[T], noun string) *CollectionController[T] {
	return &CollectionController[T]{service: svc, noun: noun}
}

// Mount registers GET/POST on the group root and PUT/DELETE on /:id.
func (cc *CollectionController[T]) Mount(rg *gin.RouterGroup) {
	rg.GET("", cc.List)
	rg.POST("", cc.Create)
	rg.PUT("/:id", cc.Update)
	rg.DELETE("/:id", cc.Delete)
}

func (cc *CollectionController[T]) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := cc.service.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(items))
}

func (cc *CollectionController[T]) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := cc.service.Create(c.Request.Context(), userID, item)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.OK(created))
}

func (cc *CollectionController[T]) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := cc.service.Update(c.Request.Context(), userID, c.Param("id"), item)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(updated))
}

func (cc *CollectionController[T]) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := cc.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OKMessage(cc.noun+" deleted successfully"))
}
