package handlers

import (
	"bufio"
	"errors"
	"io"
	"log"
	"path"
	"strconv"

	"github.com/AshokWPD/gold-updated/internal/httpx"
	"github.com/AshokWPD/gold-updated/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
)

const maxAttachmentSize = 25 << 20 // 25 MiB

type AttachmentHandler struct {
	s3 *storage.S3Storage
}

func NewAttachmentHandler(s3 *storage.S3Storage) *AttachmentHandler {
	return &AttachmentHandler{s3: s3}
}

// Upload stores a multipart file and returns the object key the client
// then references in a message's file list.
func (h *AttachmentHandler) Upload(c *fiber.Ctx) error {
	if h.s3 == nil {
		return httpx.Error(c, fiber.StatusServiceUnavailable, "storage_not_configured", "Storage not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return httpx.BadRequest(c, "missing_file", "A file field is required")
	}
	if fileHeader.Size > maxAttachmentSize {
		return httpx.Error(c, fiber.StatusRequestEntityTooLarge, "file_too_large", "File exceeds the size limit")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return httpx.Internal(c, "attachment_open_failed")
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := storage.NewAttachmentKey(fileHeader.Filename)
	st, err := h.s3.PutObject(c.Context(), key, src, fileHeader.Size, contentType)
	if err != nil {
		log.Printf("attachment: upload %q: %v", key, err)
		return httpx.Internal(c, "attachment_upload_failed")
	}

	return httpx.Created(c, fiber.Map{
		"object_key":   key,
		"name":         path.Base(fileHeader.Filename),
		"content_type": contentType,
		"size":         st.Size,
	})
}

// Download streams a stored attachment back to the client.
func (h *AttachmentHandler) Download(c *fiber.Ctx) error {
	if h.s3 == nil {
		return httpx.Error(c, fiber.StatusServiceUnavailable, "storage_not_configured", "Storage not configured")
	}

	key, err := storage.SafeAttachmentKey(c.Params("*"))
	if err != nil {
		return httpx.NotFound(c, "not_found", "Not found")
	}

	obj, st, err := h.s3.GetObject(c.Context(), key)
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) {
			if resp.StatusCode == 404 || resp.Code == "NoSuchKey" || resp.Code == "NoSuchObject" {
				return httpx.NotFound(c, "not_found", "Not found")
			}
		}
		log.Printf("attachment: fetch %q: %v", key, err)
		return httpx.Internal(c, "attachment_fetch_failed")
	}

	if st.ContentType != "" {
		c.Type(st.ContentType)
	} else {
		c.Type("application/octet-stream")
	}
	if st.Size > 0 {
		c.Set("Content-Length", strconv.FormatInt(st.Size, 10))
	}
	c.Set("Content-Disposition", "attachment; filename=\""+path.Base(key)+"\"")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer func() {
			_ = obj.Close()
		}()
		if _, err := io.Copy(w, obj); err != nil {
			log.Printf("attachment: stream %q: %v", key, err)
			return
		}
		_ = w.Flush()
	})
	return nil
}
