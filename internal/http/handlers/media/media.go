package media

import (
	"context"
	"errors"
	"net/http"

	"github.com/princekumarofficial/sociopedia-api/internal/http/middleware"
	"github.com/princekumarofficial/sociopedia-api/internal/logger"
	mediaService "github.com/princekumarofficial/sociopedia-api/internal/services/media"
	mediatypes "github.com/princekumarofficial/sociopedia-api/internal/types/media"
	"github.com/princekumarofficial/sociopedia-api/internal/utils/response"
)

// UploadURLGenerator is implemented by *mediaService.Service.
type UploadURLGenerator interface {
	GeneratePresignedUploadURL(ctx context.Context, userID, contentType string) (*mediatypes.UploadInfo, error)
}

type MediaHandlers struct {
	mediaService UploadURLGenerator
}

// NewMediaHandlers creates a new media handlers instance
func NewMediaHandlers(mediaService UploadURLGenerator) *MediaHandlers {
	return &MediaHandlers{
		mediaService: mediaService,
	}
}

// GenerateUploadURL generates a presigned URL for a picture upload
// @Summary Generate presigned upload URL
// @Description Returns a URL to PUT a picture to. Store the returned objectKey as picturePath.
// @Tags media
// @Accept json
// @Produce json
// @Param request body media.UploadURLRequest true "Upload URL request"
// @Success 200 {object} response.Response{data=media.UploadInfo} "Upload URL generated successfully"
// @Failure 400 {object} response.Response "Bad request"
// @Failure 401 {object} response.Response "Invalid token"
// @Failure 403 {object} response.Response "Missing token"
// @Failure 500 {object} response.Response "Internal server error"
// @Security BearerAuth
// @Router /media/upload-url [post]
func (h *MediaHandlers) GenerateUploadURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(errors.New("user not authenticated")))
			return
		}

		var req mediatypes.UploadURLRequest
		if !response.DecodeAndValidate(w, r, &req) {
			return
		}

		uploadInfo, err := h.mediaService.GeneratePresignedUploadURL(r.Context(), userID, req.ContentType)
		if err != nil {
			if errors.Is(err, mediaService.ErrContentTypeNotAllowed) {
				response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
				return
			}
			logger.FromRequest(r).Error().Err(err).Msg("failed to generate upload URL")
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errors.New("failed to generate upload URL")))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Upload URL generated successfully", uploadInfo))
	}
}
