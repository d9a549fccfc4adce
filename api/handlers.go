// Package api wires the board's HTTP surface onto an Echo instance.
package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/gtushar8055/WebSocket-Based-Kanban-Board/domain"
	"github.com/gtushar8055/WebSocket-Based-Kanban-Board/uploads"
)

// Engine is the slice of the realtime engine the HTTP surface needs.
type Engine interface {
	// Reset clears the board and resyncs all observers.
	Reset()
	// Handler serves the WebSocket endpoint.
	Handler() echo.HandlerFunc
}

// Intake persists a validated attachment upload.
type Intake interface {
	Store(filename, contentType string, size int64, r io.Reader) (domain.Attachment, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register wires up all routes on the provided Echo instance.
func Register(e *echo.Echo, engine Engine, intake Intake, uploadDir string, logger *log.Logger) {
	e.GET("/ws", engine.Handler())
	e.POST("/api/upload", uploadFile(intake, logger))
	e.POST("/api/reset", resetBoard(engine))
	e.Static("/uploads", uploadDir)
	e.GET("/healthz", healthz())
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func uploadFile(intake Intake, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		metrics := newUploadRequestMetrics(logger)
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		fh, ferr := c.FormFile("file")
		if ferr != nil {
			metrics.SetErrorStage("missing_file")
			err = c.JSON(http.StatusBadRequest, errorResponse{Error: "No file uploaded"})
			return err
		}
		metrics.SetDeclaredSize(fh.Size)

		src, oerr := fh.Open()
		if oerr != nil {
			metrics.SetErrorStage("open")
			err = c.JSON(http.StatusBadRequest, errorResponse{Error: "No file uploaded"})
			return err
		}
		defer src.Close()

		att, serr := intake.Store(fh.Filename, fh.Header.Get(echo.HeaderContentType), fh.Size, src)
		if serr != nil {
			switch {
			case errors.Is(serr, uploads.ErrFileTooLarge):
				metrics.SetErrorStage("too_large")
				err = c.JSON(http.StatusBadRequest, errorResponse{Error: "File too large"})
			case errors.Is(serr, uploads.ErrInvalidFileType):
				metrics.SetErrorStage("invalid_type")
				err = c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid file type"})
			default:
				metrics.SetErrorStage("write")
				c.Logger().Error(serr)
				err = c.JSON(http.StatusInternalServerError, errorResponse{Error: "upload failed"})
			}
			return err
		}

		metrics.SetStored(att.Filename, att.Size)
		err = c.JSON(http.StatusOK, att)
		return err
	}
}

func resetBoard(engine Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		engine.Reset()
		return c.JSON(http.StatusOK, messageResponse{Message: "Tasks reset"})
	}
}
