package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/studio-site/internal/models"
	"github.com/phambaophuc/studio-site/pkg/cloudinary"
	"go.uber.org/zap"
)

// ImageHandler exposes the responsive image helpers as JSON endpoints.
type ImageHandler struct {
	images *cloudinary.Builder
	logger *zap.Logger
}

func NewImageHandler(images *cloudinary.Builder, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{
		images: images,
		logger: logger,
	}
}

func (h *ImageHandler) URL(c *gin.Context) {
	var req models.ImageURLRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	respondData(c, http.StatusOK, models.ImageURLResponse{
		Src:      req.Src,
		PublicID: cloudinary.ExtractPublicID(req.Src),
		URL:      h.images.GetURL(req.Src, req.Options()),
	})
}

func (h *ImageHandler) Responsive(c *gin.Context) {
	req, ok := h.bindResponsive(c)
	if !ok {
		return
	}
	respondData(c, http.StatusOK, h.images.GetResponsiveURLs(req.ResponsiveOptions()))
}

func (h *ImageHandler) SrcSet(c *gin.Context) {
	req, ok := h.bindResponsive(c)
	if !ok {
		return
	}
	respondData(c, http.StatusOK, models.SrcSetResponse{
		SrcSet: h.images.GenerateSrcSet(req.ResponsiveOptions()),
	})
}

func (h *ImageHandler) Sizes(c *gin.Context) {
	var req models.SizesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	respondData(c, http.StatusOK, models.SizesResponse{
		Sizes: cloudinary.GenerateSizes(req.SlotSizes()),
	})
}

func (h *ImageHandler) Props(c *gin.Context) {
	req, ok := h.bindResponsive(c)
	if !ok {
		return
	}

	var sizes models.SizesRequest
	if err := c.ShouldBindQuery(&sizes); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	respondData(c, http.StatusOK, h.images.GetOptimizedImageProps(req.ResponsiveOptions(), sizes.SlotSizes()))
}

func (h *ImageHandler) Background(c *gin.Context) {
	req, ok := h.bindResponsive(c)
	if !ok {
		return
	}
	respondData(c, http.StatusOK, h.images.GetBackgroundImageURLs(req.ResponsiveOptions()))
}

func (h *ImageHandler) bindResponsive(c *gin.Context) (*models.ResponsiveImageRequest, bool) {
	var req models.ResponsiveImageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return &req, true
}
