package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"binLiquidity/internal/config"
	"binLiquidity/internal/dex"
	"binLiquidity/internal/model"
)

func runDecode(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadDecode(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output path is required")
	}
	if cfg.Errors == "" {
		return fmt.Errorf("errors path is required")
	}

	decoder, err := dex.NewBinPositionDecoder(dex.DecoderConfig{SelectorMap: cfg.SelectorMap})
	if err != nil {
		return err
	}

	inputFile, err := os.Open(cfg.In)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer inputFile.Close()

	outWriter, err := newJSONLWriter(cfg.Out, false)
	if err != nil {
		return err
	}
	defer outWriter.Close()

	errWriter, err := newJSONLWriter(cfg.Errors, false)
	if err != nil {
		return err
	}
	defer errWriter.Close()

	logger.Info("decode start",
		zap.String("in", cfg.In),
		zap.String("out", cfg.Out),
		zap.String("errors", cfg.Errors),
		zap.Int("selector_map", len(cfg.SelectorMap)),
	)

	stats, err := decodeStream(inputFile, decoder, outWriter, errWriter)
	if err != nil {
		return err
	}

	logger.Info("decode complete",
		zap.Int("total", stats.total),
		zap.Int("decoded", stats.decoded),
		zap.Int("skipped", stats.skipped),
		zap.Int("failed", stats.failed),
	)

	return nil
}

type decodeStats struct {
	total, decoded, skipped, failed int
}

type recordWriter interface {
	Write(value interface{}) error
}

func decodeStream(in io.Reader, decoder dex.Decoder, out, errs recordWriter) (decodeStats, error) {
	var stats decodeStats

	scanner := bufio.NewScanner(in)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		stats.total++

		calldata, err := calldataFromLine(line)
		if err != nil {
			stats.failed++
			writeDecodeError(errs, model.DecodeError{Line: lineNo, Error: err.Error()})
			continue
		}

		selector := selectorOf(calldata)
		if !decoder.CanDecode(selector) {
			stats.skipped++
			continue
		}

		call, err := decoder.Decode(calldata)
		if err != nil {
			stats.failed++
			writeDecodeError(errs, model.DecodeError{
				Line:     lineNo,
				Selector: selector,
				Calldata: calldata,
				Error:    err.Error(),
			})
			continue
		}
		call.Line = lineNo

		if err := out.Write(call); err != nil {
			return stats, err
		}
		stats.decoded++
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scan input: %w", err)
	}
	return stats, nil
}

// calldataFromLine accepts a journal payload object or a bare hex string.
func calldataFromLine(line []byte) (string, error) {
	if line[0] == '{' {
		var payload model.Payload
		if err := json.Unmarshal(line, &payload); err != nil {
			return "", err
		}
		if payload.Calldata == "" {
			return "", fmt.Errorf("missing calldata")
		}
		return strings.TrimSpace(payload.Calldata), nil
	}
	return strings.Trim(string(line), "\""), nil
}

func selectorOf(calldata string) string {
	if len(calldata) < 10 || !strings.HasPrefix(strings.ToLower(calldata), "0x") {
		return ""
	}
	return strings.ToLower(calldata[:10])
}

type jsonlWriter struct {
	file   *os.File
	writer *bufio.Writer
}

func newJSONLWriter(path string, appendMode bool) (*jsonlWriter, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dir: %w", err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	return &jsonlWriter{
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

func (w *jsonlWriter) Write(value interface{}) error {
	line, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if _, err := w.writer.Write(line); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	return nil
}

func (w *jsonlWriter) Close() error {
	if w == nil {
		return nil
	}
	if err := w.writer.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

func writeDecodeError(writer recordWriter, errRecord model.DecodeError) {
	if writer == nil {
		return
	}
	_ = writer.Write(errRecord)
}
