package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"mime"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/webp"
)

// Tour gallery photos come straight from phone cameras, so anything wider
// than this gets scaled down before it hits object storage.
const DefaultMaxDimension = 2560

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type Result struct {
	Bytes       []byte
	ContentType string
	Resized     bool
}

type Processor interface {
	Process(ctx context.Context, upload Upload) (*Result, error)
}

// FFmpegProcessor shells out to ffmpeg for resizing. Image dimensions are
// probed in-process (the webp import registers the decoder); ffmpeg only
// runs when the image actually needs scaling down.
type FFmpegProcessor struct {
	binary       string
	maxDimension int
}

func NewFFmpegProcessor(binary string, maxDimension int) *FFmpegProcessor {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &FFmpegProcessor{binary: binary, maxDimension: maxDimension}
}

func (p *FFmpegProcessor) Process(ctx context.Context, upload Upload) (*Result, error) {
	if upload.Reader == nil {
		return nil, fmt.Errorf("media: empty reader")
	}
	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, fmt.Errorf("media: read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("media: empty upload")
	}

	contentType := sniffContentType(upload.ContentType, upload.FileName)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("media: decode image: %w", err)
	}
	if cfg.Width <= p.maxDimension && cfg.Height <= p.maxDimension {
		return &Result{Bytes: data, ContentType: contentType, Resized: false}, nil
	}

	width, height := fit(cfg.Width, cfg.Height, p.maxDimension)
	resized, err := p.resize(ctx, data, contentType, width, height)
	if err != nil {
		return nil, err
	}
	return &Result{Bytes: resized, ContentType: contentType, Resized: true}, nil
}

func fit(width, height, maxDim int) (int, int) {
	scale := float64(maxDim) / float64(max(width, height))
	w := int(math.Round(float64(width) * scale))
	h := int(math.Round(float64(height) * scale))
	// ffmpeg rejects odd or degenerate frame sizes for some codecs.
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	return w, h
}

func (p *FFmpegProcessor) resize(ctx context.Context, data []byte, contentType string, width, height int) ([]byte, error) {
	var codec string
	var quality []string
	switch contentType {
	case "image/jpeg":
		codec, quality = "mjpeg", []string{"-q:v", "3"}
	case "image/png":
		codec, quality = "png", []string{"-compression_level", "4"}
	case "image/webp":
		codec, quality = "libwebp", []string{"-quality", "85"}
	default:
		return nil, fmt.Errorf("media: unsupported content type %s", contentType)
	}

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", "pipe:0",
		"-vf", "scale=" + strconv.Itoa(width) + ":" + strconv.Itoa(height) + ":flags=lanczos",
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", codec,
	}
	args = append(args, quality...)
	args = append(args, "pipe:1")

	cmd := exec.CommandContext(ctx, p.binary, args...)
	cmd.Stdin = bytes.NewReader(data)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("ffmpeg: %v: %s", err, msg)
		}
		return nil, fmt.Errorf("ffmpeg: %w", err)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg: produced empty output")
	}
	return stdout.Bytes(), nil
}

func sniffContentType(value, fileName string) string {
	ct := strings.ToLower(strings.TrimSpace(value))
	if ct == "image/jpg" {
		return "image/jpeg"
	}
	if ct != "" {
		return ct
	}
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		if mt := mime.TypeByExtension(ext); mt != "" {
			return strings.ToLower(mt)
		}
	}
	return "image/jpeg"
}
