package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/VoltEdgeBuilds/learn/internal/domain"

	"github.com/gin-gonic/gin"
)

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrPINMismatch):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrTokenRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrLessonNotInCourse):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError answers {"error": ...}. Internal details never leave the process.
func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(status, gin.H{"error": "Something went wrong, please try again later"})
		return
	}

	var msg string
	for _, sentinel := range []error{
		domain.ErrPINMismatch, domain.ErrInvalidCredentials, domain.ErrTokenRevoked,
		domain.ErrUserNotFound, domain.ErrCourseNotFound, domain.ErrLessonNotInCourse,
		domain.ErrUserAlreadyExists,
	} {
		if errors.Is(err, sentinel) {
			msg = sentinel.Error()
			break
		}
	}
	c.JSON(status, gin.H{"error": msg})
}
