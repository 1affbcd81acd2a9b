package controllers

import (
	"errors"
	"net/http"

	"github.com/bmimportados/backoffice-backend/api/responses"
	pkgerrors "github.com/bmimportados/backoffice-backend/pkg/errors"
	"github.com/bmimportados/backoffice-backend/pkg/logger"
	"github.com/bmimportados/backoffice-backend/pkg/storage/uploader"
)

const uploadMemoryLimit = 4 << 20

// Upload proxies a multipart file to the media service and responds with the
// hosted URL. The request body is capped at the configured upload size.
func Upload(client *uploader.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "upload client unavailable"))
			return
		}

		if max := client.MaxBytes(); max > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, max)
		}

		if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "file exceeds the upload size limit"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart request"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "file field is required"))
			return
		}
		defer file.Close()

		result, err := client.Upload(r.Context(), header.Filename, file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload to media service"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"url": result.URL})
	}
}
