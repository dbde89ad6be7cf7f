// SPDX-License-Identifier: MIT

package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/renameio/v2"

	"github.com/ManuGH/sportfeed/internal/channels"
	"github.com/ManuGH/sportfeed/internal/config"
	"github.com/ManuGH/sportfeed/internal/fsutil"
	sflog "github.com/ManuGH/sportfeed/internal/log"
	"github.com/ManuGH/sportfeed/internal/metrics"
)

// ErrWrite tags sink failures. The CLI maps it to a dedicated exit code so
// the cron wrapper can tell a broken output write from a config mistake.
var ErrWrite = errors.New("write channel document")

// wrappedDocument is the envelope variant of the output file.
type wrappedDocument struct {
	Channels    []channels.Channel `json:"channels"`
	LastUpdated string             `json:"last_updated"`
}

// EncodeDocument renders the channel list as pretty JSON, either a bare
// array or the wrapped envelope with a last-updated stamp. HTML escaping
// is off so stream URLs keep their literal query separators.
func EncodeDocument(chs []channels.Channel, indent int, wrapped bool, now time.Time) ([]byte, error) {
	if chs == nil {
		chs = []channels.Channel{}
	}
	if indent <= 0 {
		indent = 2
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))

	var err error
	if wrapped {
		err = enc.Encode(wrappedDocument{
			Channels:    chs,
			LastUpdated: now.Format("2006-01-02 15:04:05"),
		})
	} else {
		err = enc.Encode(chs)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// write persists the document atomically. renameio stages a temp file and
// fsyncs before the rename, so the viewer never reads a torn file.
func (p *Pipeline) write(ctx context.Context, cfg config.Config, chs []channels.Channel) error {
	logger := sflog.WithComponentFromContext(ctx, "pipeline")

	data, err := EncodeDocument(chs, cfg.OutputIndent, cfg.WrappedOutput, p.now())
	if err != nil {
		metrics.IncOutputWriteError()
		return fmt.Errorf("%w: encode: %w", ErrWrite, err)
	}

	if err := fsutil.EnsureParentDir(cfg.OutputPath); err != nil {
		metrics.IncOutputWriteError()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	pf, err := renameio.NewPendingFile(cfg.OutputPath)
	if err != nil {
		metrics.IncOutputWriteError()
		return fmt.Errorf("%w: create pending file: %w", ErrWrite, err)
	}
	defer func() {
		if cerr := pf.Cleanup(); cerr != nil {
			logger.Debug().Err(cerr).Msg("cleanup pending output file")
		}
	}()

	if _, err := pf.Write(data); err != nil {
		metrics.IncOutputWriteError()
		return fmt.Errorf("%w: write pending file: %w", ErrWrite, err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		metrics.IncOutputWriteError()
		return fmt.Errorf("%w: replace output file: %w", ErrWrite, err)
	}

	logger.Info().
		Str("event", "output.written").
		Str("path", cfg.OutputPath).
		Int("channels", len(chs)).
		Int("bytes", len(data)).
		Msg("channel document written")
	return nil
}
