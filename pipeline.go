package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/leasap/assemble"
	"github.com/ByLCY/leasap/config"
	"github.com/ByLCY/leasap/dsl"
	"github.com/ByLCY/leasap/extract"
	"github.com/ByLCY/leasap/layout"
	"github.com/ByLCY/leasap/llm"
	"github.com/ByLCY/leasap/processing"
	"github.com/ByLCY/leasap/renderer"
	canvasrenderer "github.com/ByLCY/leasap/renderer/canvas"
	fpdfrenderer "github.com/ByLCY/leasap/renderer/fpdf"
	textrenderer "github.com/ByLCY/leasap/renderer/text"
)

// newBackend 根据配置选择排版与渲染后端。
func newBackend(cfg config.Config) (renderer.Backend, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", renderer.NameFPDF:
		return fpdfrenderer.NewRenderer(), nil
	case renderer.NameCanvas:
		fonts := make(map[string]canvasrenderer.Resource, len(cfg.CanvasFonts))
		for name, path := range cfg.CanvasFonts {
			fonts[name] = canvasrenderer.Resource{Path: path}
		}
		return canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Fonts: fonts}), nil
	case renderer.NameText:
		return textrenderer.NewRenderer(), nil
	}
	return nil, fmt.Errorf("%w: unknown backend %q", layout.ErrConfig, cfg.Backend)
}

func engineOptions(cfg config.Config, logger *slog.Logger, ts layout.Typesetter) layout.Options {
	opts := layout.Options{Typesetter: ts, Logger: logger}
	if cfg.LegacyCursor {
		opts.PageCursor = layout.PageCursorLegacy
	}
	return opts
}

// runScript 串联解析、布局与渲染。
func runScript(cfg config.Config, logger *slog.Logger, inputPath, outputPath, debugPath string, data any) error {
	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开脚本文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析脚本失败: %w", err)
	}
	result, err := layout.Build(doc, data, engineOptions(cfg, logger, backend))
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}
	return finish(logger, backend, result, outputPath, debugPath)
}

// runAssemble lays out an already computed processing result.
func runAssemble(cfg config.Config, logger *slog.Logger, res processing.Result, outputPath, debugPath string) error {
	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}
	doc, err := assemble.BuildDocument(res, assemble.Options{
		Page:   cfg.Page,
		Engine: engineOptions(cfg, logger, backend),
	})
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}
	return finish(logger, backend, doc, outputPath, debugPath)
}

type processRequest struct {
	input      string
	output     string
	debugPath  string
	resultPath string
}

// runProcess extracts the PDF, asks the model and lays out the answer.
func runProcess(ctx context.Context, cfg config.Config, logger *slog.Logger, service processing.Service, req processRequest) error {
	client, err := llm.NewOpenAI(cfg.LLM)
	if err != nil {
		return err
	}
	return process(ctx, cfg, logger, client, service, req)
}

func process(ctx context.Context, cfg config.Config, logger *slog.Logger, client llm.Completer, service processing.Service, req processRequest) error {
	segments, err := extract.Pages(req.input, logger)
	if err != nil {
		return err
	}
	logger.Info("extracted text", "file", req.input, "pages", len(segments))

	p := processing.NewProcessor(client, logger)
	res, err := p.Run(ctx, service, segments, cfg.Questionnaire, cfg.Summary)
	if err != nil {
		return err
	}
	if req.resultPath != "" {
		if err := saveResult(res, req.resultPath); err != nil {
			return err
		}
	}
	return runAssemble(cfg, logger, res, req.output, req.debugPath)
}

func finish(logger *slog.Logger, backend renderer.Backend, doc *layout.Document, outputPath, debugPath string) error {
	if debugPath != "" {
		if err := writeDebug(doc, debugPath); err != nil {
			return err
		}
	}
	out, err := backend.Render(doc)
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}
	if err := writeFile(outputPath, out); err != nil {
		return err
	}
	logger.Info("document written", "path", outputPath, "pages", doc.PageCount(), "bytes", len(out))
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入文件失败: %w", err)
	}
	return nil
}

func writeDebug(doc *layout.Document, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(doc, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

// loadData reads the binding data from an inline JSON string or a file.
func loadData(inline, path string) (any, error) {
	raw := []byte(inline)
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取 data 文件失败: %w", err)
		}
		raw = b
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
	}
	return data, nil
}

func loadResult(path string) (processing.Result, error) {
	var res processing.Result
	raw, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("读取结果文件失败: %w", err)
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return res, fmt.Errorf("解析结果 JSON 失败: %w", err)
	}
	service, err := processing.ParseService(string(res.Service))
	if err != nil {
		return res, err
	}
	res.Service = service
	return res, nil
}

func saveResult(res processing.Result, path string) error {
	raw, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, raw)
}
