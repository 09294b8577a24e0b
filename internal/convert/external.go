package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/cengizhan/substack-sync/internal/logging"
)

const commandTimeout = 30 * time.Second

// CommandConverter delegates the conversion to an external script (the
// prosemirror-markdown serializer run under node) for higher-fidelity output.
type CommandConverter struct {
	node   string
	script string
}

// NewCommandConverter locates the node executable.
func NewCommandConverter(script string) (*CommandConverter, error) {
	path, err := exec.LookPath("node")
	if err != nil {
		return nil, errors.New("executable 'node' not found in $PATH")
	}
	return &CommandConverter{
		node:   path,
		script: script,
	}, nil
}

func (c *CommandConverter) Convert(doc *Node) (string, error) {
	if doc == nil {
		return "", nil
	}

	input, err := json.Marshal(doc.Normalize())
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.node, c.script)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		logging.CurrentLogger().Debugf("External converter failed: %v (%s)", err, strings.TrimSpace(stderr.String()))
		return "", err
	}

	return strings.TrimSpace(stdout.String()), nil
}

// fallbackConverter tries a primary converter and falls back on ANY failure
// (missing executable, non-zero exit, timeout). Callers observe a single
// contract; only the exact output formatting may differ between the paths.
type fallbackConverter struct {
	primary  Converter
	fallback Converter
}

// WithFallback wraps two converters behind the uniform contract.
// A nil primary means the fallback is used directly.
func WithFallback(primary, fallback Converter) Converter {
	return &fallbackConverter{
		primary:  primary,
		fallback: fallback,
	}
}

func (c *fallbackConverter) Convert(doc *Node) (string, error) {
	if c.primary != nil {
		markup, err := c.primary.Convert(doc)
		if err == nil {
			return markup, nil
		}
		logging.CurrentLogger().Infof("Falling back to built-in converter: %v", err)
	}
	return c.fallback.Convert(doc)
}

// DefaultConverter assembles the production chain: the external node-based
// serializer when available, the built-in tree walk otherwise.
func DefaultConverter(script string) Converter {
	fallback := NewTreeConverter()
	if script == "" {
		return fallback
	}
	primary, err := NewCommandConverter(script)
	if err != nil {
		return fallback
	}
	return WithFallback(primary, fallback)
}
