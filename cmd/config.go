package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"voipms-sms-sync/internal/logging"
)

// newConfigCmd는 설정 확인 명령어를 생성합니다.
// 루트 명령어와 같은 옵션을 받아 병합과 검증까지만 수행하고 네트워크는 사용하지 않습니다.
func newConfigCmd(a *app) *cobra.Command {
	var configValidate bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "확정된 설정을 확인합니다",
		Long: `config 명령어는 기본값, 설정 파일, 명령줄 옵션을 병합하고 검증한 결과를 보여줍니다.

비밀번호는 출력하지 않습니다.`,
		Example: `  # 확정된 설정을 YAML로 표시
  voipms-sms-sync config --show --config=./sms.json

  # 설정 유효성 검증
  voipms-sms-sync config --validate --did=5551234567`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(a.stderr, a.flags.isVerbose())

			settings, err := a.resolveSettings(logger)
			if err != nil {
				return err
			}

			if configValidate {
				fmt.Fprintf(a.stdout, "✅ 설정이 유효합니다: %s\n", settings.ConfigPath)
				return nil
			}

			data, err := yaml.Marshal(settings.Masked())
			if err != nil {
				return fmt.Errorf("설정 직렬화 실패: %w", err)
			}
			_, err = a.stdout.Write(data)
			return err
		},
	}

	cmd.Flags().Bool("show", false, "확정된 설정을 YAML로 표시합니다 (기본 동작)")
	cmd.Flags().BoolVar(&configValidate, "validate", false, "설정의 유효성만 검증합니다")
	cmd.MarkFlagsMutuallyExclusive("show", "validate")

	return cmd
}
