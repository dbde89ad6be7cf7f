// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/ManuGH/sportfeed/internal/fsutil"
	sflog "github.com/ManuGH/sportfeed/internal/log"
)

// maxDocumentSize caps the served document. The channel list is a few
// hundred records at most, so anything beyond this is a broken write.
const maxDocumentSize = 20 << 20

// handleDocument serves the generated channel document. The path is
// resolved through the confinement check so a symlinked output location
// cannot leak files from outside its directory.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	logger := sflog.WithComponentFromContext(r.Context(), "api")
	outputPath := s.cfg.Get().OutputPath

	dir, err := filepath.Abs(filepath.Dir(outputPath))
	if err != nil {
		logger.Error().Err(err).Str("event", "document.invalid_path").Msg("output path not resolvable")
		recordFileRequestDenied("internal_error")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	path, err := fsutil.ConfineRelPath(dir, filepath.Base(outputPath))
	if err != nil {
		logger.Warn().Err(err).Str("event", "document.denied").Str("path", outputPath).Msg("output path rejected")
		recordFileRequestDenied("path_escape")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info().Str("event", "document.not_found").Str("path", path).Msg("document not generated yet")
			recordFileRequestDenied("not_found")
			http.Error(w, "Document not generated yet", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("event", "document.stat_failed").Str("path", path).Msg("could not stat document")
		recordFileRequestDenied("internal_error")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !info.Mode().IsRegular() {
		logger.Warn().Str("event", "document.denied").Str("path", path).Msg("document is not a regular file")
		recordFileRequestDenied("not_regular")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if info.Size() > maxDocumentSize {
		logger.Warn().Int64("size", info.Size()).Str("event", "document.too_large").Msg("document exceeds maximum size")
		recordFileRequestDenied("too_large")
		http.Error(w, "Document too large", http.StatusRequestEntityTooLarge)
		return
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is confined to the output directory
	if err != nil {
		logger.Error().Err(err).Str("event", "document.read_failed").Str("path", path).Msg("could not read document")
		recordFileRequestDenied("internal_error")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// The viewer polls this file for live matches, so intermediaries must
	// not cache it.
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	if _, err := w.Write(data); err != nil {
		logger.Error().Err(err).Str("event", "document.write_failed").Msg("failed to write document response")
	}
}
