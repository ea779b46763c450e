package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ByLCY/leasap/config"
	"github.com/ByLCY/leasap/processing"
)

func main() {
	cmd := &cli.Command{
		Name:  "leasap",
		Usage: "Turn PDFs into questionnaires and summaries, or lay out scripts as PDF",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML 配置文件路径"},
			&cli.StringFlag{Name: "backend", Aliases: []string{"b"}, Usage: "渲染后端: fpdf, canvas 或 text"},
			&cli.BoolFlag{Name: "legacy-cursor", Usage: "新页面的光标 y 使用右边距（兼容旧版输出）"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "输出调试日志"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "输出文件路径", Value: "output/leasap.pdf"},
			&cli.StringFlag{Name: "debug", Usage: "布局调试 JSON 输出路径"},
		},
		Commands: []*cli.Command{
			{
				Name:      "render",
				Usage:     "Lay out a script file",
				ArgsUsage: "<script>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "data", Usage: "绑定到脚本的 JSON 数据"},
					&cli.StringFlag{Name: "data-file", Usage: "绑定到脚本的 JSON 文件"},
				},
				Action: renderAction,
			},
			{
				Name:      "assemble",
				Usage:     "Lay out a saved processing result (JSON)",
				ArgsUsage: "<result.json>",
				Action:    assembleAction,
			},
			{
				Name:      "quiz",
				Usage:     "Create a questionnaire from a PDF",
				ArgsUsage: "<input.pdf>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Usage: "single, multiple, boolean 或 essay"},
					&cli.IntFlag{Name: "questions", Aliases: []string{"n"}, Usage: "题目数量"},
					&cli.StringFlag{Name: "save-result", Usage: "同时保存处理结果 JSON"},
				},
				Action: processAction(processing.ServiceQuestionnaire),
			},
			{
				Name:      "summarize",
				Usage:     "Summarize a PDF",
				ArgsUsage: "<input.pdf>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Usage: "paragraph 或 bullet"},
					&cli.IntFlag{Name: "max-words", Usage: "摘要最大词数"},
					&cli.StringFlag{Name: "save-result", Usage: "同时保存处理结果 JSON"},
				},
				Action: processAction(processing.ServiceSummary),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "leasap: %v\n", err)
		os.Exit(1)
	}
}

// setup 读取配置、应用全局参数并创建日志。
func setup(cmd *cli.Command) (config.Config, *slog.Logger, error) {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return cfg, nil, err
	}
	if b := cmd.String("backend"); b != "" {
		cfg.Backend = b
	}
	if cmd.Bool("legacy-cursor") {
		cfg.LegacyCursor = true
	}
	return cfg, logger, cfg.Validate()
}

func renderAction(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("render 需要一个脚本文件参数")
	}
	data, err := loadData(cmd.String("data"), cmd.String("data-file"))
	if err != nil {
		return err
	}
	return runScript(cfg, logger, cmd.Args().First(), cmd.String("out"), cmd.String("debug"), data)
}

func assembleAction(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("assemble 需要一个结果 JSON 参数")
	}
	res, err := loadResult(cmd.Args().First())
	if err != nil {
		return err
	}
	return runAssemble(cfg, logger, res, cmd.String("out"), cmd.String("debug"))
}

func processAction(service processing.Service) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		if cmd.Args().Len() != 1 {
			return fmt.Errorf("%s 需要一个 PDF 文件参数", cmd.Name)
		}
		switch service {
		case processing.ServiceQuestionnaire:
			if k := cmd.String("kind"); k != "" {
				if cfg.Questionnaire.Kind, err = processing.ParseAnswerKind(k); err != nil {
					return err
				}
			}
			if n := cmd.Int("questions"); n > 0 {
				cfg.Questionnaire.NumQuestions = n
			}
		case processing.ServiceSummary:
			if k := cmd.String("kind"); k != "" {
				if cfg.Summary.Kind, err = processing.ParseSummaryKind(k); err != nil {
					return err
				}
			}
			if n := cmd.Int("max-words"); n > 0 {
				cfg.Summary.MaxWords = n
			}
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return runProcess(ctx, cfg, logger, service, processRequest{
			input:      cmd.Args().First(),
			output:     cmd.String("out"),
			debugPath:  cmd.String("debug"),
			resultPath: cmd.String("save-result"),
		})
	}
}
