package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platefull/backend/internal/service"
)

// respondError maps domain errors to status codes. Invalid caller intent
// comes back as 400/403/404 with the error message; anything else is an
// internal failure with a generic body so callers can tell "your request
// was invalid" from "try again".
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoSuchUser),
		errors.Is(err, service.ErrNoSuchRecipe),
		errors.Is(err, service.ErrRelationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotRecipeAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateRelation),
		errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrEmptyTagSet),
		errors.Is(err, service.ErrDuplicateTag),
		errors.Is(err, service.ErrEmptyIngredientSet),
		errors.Is(err, service.ErrDuplicateIngredient),
		errors.Is(err, service.ErrAmountOutOfRange),
		errors.Is(err, service.ErrCookingTimeOutOfRange),
		errors.Is(err, service.ErrInvalidRecipesLimit),
		errors.Is(err, service.ErrUnknownTag),
		errors.Is(err, service.ErrUnknownIngredient),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		slog.Error("internal error", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
