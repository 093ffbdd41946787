package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"spendwise/internal/config"
	"spendwise/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadHandler stores receipt files referenced by transactions.
type UploadHandler struct {
	Cfg config.UploadConfig
}

func NewUploadHandler(cfg config.UploadConfig) *UploadHandler {
	return &UploadHandler{Cfg: cfg}
}

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".pdf": true,
}

// Upload accepts one multipart file and stores it under a random name.
// The returned reference can be attached to a transaction as its file.
func (h *UploadHandler) Upload(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "file is required")
		return
	}

	maxSize := h.Cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 5
	}
	if file.Size > maxSize*1024*1024 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
			fmt.Sprintf("file exceeds %d MB", maxSize))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unsupported file type")
		return
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(h.Cfg.Dir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to store file")
		return
	}

	util.Success(c, util.Response{
		"file": name,
	})
}
