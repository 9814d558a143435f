package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"voipms-sms-sync/internal/collector"
	"voipms-sms-sync/internal/config"
	"voipms-sms-sync/internal/exporter"
	"voipms-sms-sync/internal/handler"
	"voipms-sms-sync/internal/interfaces"
	"voipms-sms-sync/internal/logging"
	"voipms-sms-sync/internal/service"
	"voipms-sms-sync/internal/watermark"
)

// app은 한 번의 명령 실행에 필요한 상태입니다
type app struct {
	flags     overrideFlags
	stdout    io.Writer
	stderr    io.Writer
	helpShown bool
}

// newRootCmd는 루트 명령어와 실행 상태를 생성합니다
func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, *app) {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "voipms-sms-sync",
		Short: "voip.ms DID의 SMS를 가져와 외부 핸들러로 전달합니다",
		Long: `voipms-sms-sync는 voip.ms API에서 하나의 DID에 대한 SMS를 모두 가져와
메시지마다 수신/발신 핸들러를 실행하거나 (--print) 하나의 JSON 배열로 출력합니다.

--new_only를 지정하면 잠금 파일에 저장된 워터마크보다 큰 ID의 메시지만 처리하고,
실행이 끝나면 처리한 가장 큰 ID로 워터마크를 갱신합니다.`,
		Example: `  # 새 메시지만 핸들러로 전달
  voipms-sms-sync --new_only --username=me@example.com --password=secret --did=5551234567

  # 수신 메시지를 JSON으로 출력
  voipms-sms-sync --print --direction=in`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSync(cmd.Context())
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	a.flags.register(rootCmd.PersistentFlags())
	rootCmd.MarkFlagsMutuallyExclusive("print", "inbound")
	rootCmd.MarkFlagsMutuallyExclusive("print", "outbound")

	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", config.ErrConfiguration, err)
	})

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		a.helpShown = true
		defaultHelp(c, args)
	})

	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd, a
}

// Execute는 명령줄을 실행하고 프로세스 종료 코드를 반환합니다.
// --help는 사용법을 출력한 뒤 실패 코드로 끝납니다.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd, a := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	err := checkTokens(args, allFlags(rootCmd))
	if err == nil {
		err = rootCmd.ExecuteContext(ctx)
	}

	if a.helpShown {
		return 1
	}
	if err != nil {
		logger := logging.New(stderr, false)
		logger.Error().Err(err).Msg("실행을 중단합니다")
		return 1
	}
	return 0
}

func allFlags(rootCmd *cobra.Command) *pflag.FlagSet {
	fs := pflag.NewFlagSet("all", pflag.ContinueOnError)
	fs.AddFlagSet(rootCmd.PersistentFlags())
	for _, sub := range rootCmd.Commands() {
		fs.AddFlagSet(sub.Flags())
	}
	return fs
}

// resolveSettings는 세 계층을 병합하고 검증합니다
func (a *app) resolveSettings(logger zerolog.Logger) (config.Settings, error) {
	settings, err := config.Resolve(a.flags.layer, logger)
	if err != nil {
		return config.Settings{}, err
	}
	return config.Validate(settings)
}

// runSync는 설정 확정, 가져오기, 디스패치, 워터마크 갱신을 차례로 실행합니다
func (a *app) runSync(ctx context.Context) error {
	logger := logging.New(a.stderr, a.flags.isVerbose())

	settings, err := a.resolveSettings(logger)
	if err != nil {
		return err
	}

	svc := a.buildSyncService(settings, logger)
	result, err := svc.Execute(ctx, settings)

	var statusErr *collector.StatusError
	if errors.As(err, &statusErr) {
		// 원격 서비스 실패는 보고만 하고 정상 종료합니다
		logger.Error().Str("status", statusErr.Status).Msg(collector.StatusText(statusErr.Status))
		return nil
	}
	if err != nil {
		return fmt.Errorf("동기화 실패: %w", err)
	}

	logger.Debug().
		Int("fetched", result.Fetched).
		Int("dispatched", result.Dispatched).
		Int("skipped_stale", result.SkippedStale).
		Int("skipped_direction", result.SkippedDirection).
		Int("handler_failures", result.HandlerFailures).
		Uint64("watermark", result.NewWatermark).
		Bool("watermark_persisted", result.WatermarkPersisted).
		Msg("동기화 완료")
	return nil
}

func (a *app) buildSyncService(settings config.Settings, logger zerolog.Logger) *service.SyncService {
	fetcher := collector.NewVoipMSCollector(settings.APIURL, settings.Username, settings.Password,
		collector.WithLogger(logger))

	var sink interfaces.Sink
	if settings.PrintMode {
		sink = exporter.NewPrintExporter(a.stdout)
	} else {
		sink = exporter.NewHandlerExporter(
			handler.NewExecHandler(settings.InboundHandler).WithOutput(a.stdout, a.stderr),
			handler.NewExecHandler(settings.OutboundHandler).WithOutput(a.stdout, a.stderr))
	}

	return service.NewSyncService(fetcher, sink, watermark.New(settings.LockfilePath), logger)
}
