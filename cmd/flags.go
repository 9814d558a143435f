package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"voipms-sms-sync/internal/config"
)

// presentValue는 존재 여부만 의미가 있는 플래그의 NoOptDefVal입니다
const presentValue = "true"

// onceString은 한 번만 지정할 수 있는 --name=value 옵션입니다.
// 값이 같아도 두 번째 지정은 오류입니다.
type onceString struct {
	name   string
	target **string
}

func (v *onceString) Set(s string) error {
	if *v.target != nil {
		return fmt.Errorf("--%s 옵션이 두 번 이상 지정되었습니다", v.name)
	}
	*v.target = &s
	return nil
}

func (v *onceString) String() string {
	if v.target == nil || *v.target == nil {
		return ""
	}
	return **v.target
}

func (v *onceString) Type() string { return "string" }

// onceWatermark는 --latest=N 옵션입니다
type onceWatermark struct {
	target **uint64
}

func (v *onceWatermark) Set(s string) error {
	if *v.target != nil {
		return fmt.Errorf("--latest 옵션이 두 번 이상 지정되었습니다")
	}
	value, err := config.ParseWatermark(s)
	if err != nil {
		return err
	}
	*v.target = &value
	return nil
}

func (v *onceWatermark) String() string {
	if v.target == nil || *v.target == nil {
		return ""
	}
	return fmt.Sprint(**v.target)
}

func (v *onceWatermark) Type() string { return "uint" }

// presence는 나타나기만 하면 참이 되는 플래그입니다
type presence struct {
	target **bool
}

func (v *presence) Set(s string) error {
	t := true
	*v.target = &t
	return nil
}

func (v *presence) String() string {
	if v.target == nil || *v.target == nil {
		return "false"
	}
	return fmt.Sprint(**v.target)
}

func (v *presence) Type() string { return "bool" }

func (v *presence) IsBoolFlag() bool { return true }

// overrideFlags는 명령줄 옵션을 config.Layer에 연결합니다
type overrideFlags struct {
	layer   config.Layer
	verbose *bool
}

func (o *overrideFlags) register(fs *pflag.FlagSet) {
	o.presenceVar(fs, &o.layer.PrintMode, "print", "핸들러 대신 메시지를 JSON 배열로 표준 출력에 씁니다")
	o.presenceVar(fs, &o.layer.NewOnly, "new_only", "워터마크보다 큰 ID의 메시지만 처리합니다")
	o.presenceVar(fs, &o.verbose, "verbose", "디버그 로그를 출력합니다")

	o.stringVar(fs, &o.layer.DirectionFilter, "direction", "처리할 방향: in 또는 out")
	o.stringVar(fs, &o.layer.Username, "username", "voip.ms API 사용자 (이메일)")
	o.stringVar(fs, &o.layer.Password, "password", "voip.ms API 비밀번호")
	o.stringVar(fs, &o.layer.DID, "did", "메시지를 가져올 10자리 DID")
	o.stringVar(fs, &o.layer.ConfigPath, "config", "설정 파일 경로 (기본값: "+config.DefaultConfigPath+")")
	o.stringVar(fs, &o.layer.LockfilePath, "lockfile", "워터마크 잠금 파일 경로 (기본값: "+config.DefaultLockfilePath+")")
	o.stringVar(fs, &o.layer.InboundHandler, "inbound", "수신 메시지 핸들러")
	o.stringVar(fs, &o.layer.OutboundHandler, "outbound", "발신 메시지 핸들러")
	o.stringVar(fs, &o.layer.APIURL, "api_url", "voip.ms REST API 주소")
	fs.Var(&onceWatermark{target: &o.layer.LatestWatermark}, "latest", "잠금 파일 대신 사용할 워터마크")
}

func (o *overrideFlags) stringVar(fs *pflag.FlagSet, target **string, name, usage string) {
	fs.Var(&onceString{name: name, target: target}, name, usage)
}

func (o *overrideFlags) presenceVar(fs *pflag.FlagSet, target **bool, name, usage string) {
	fs.Var(&presence{target: target}, name, usage)
	fs.Lookup(name).NoOptDefVal = presentValue
}

func (o *overrideFlags) isVerbose() bool {
	return o.verbose != nil && *o.verbose
}

// checkTokens는 pflag가 허용하는 느슨한 형식을 거부합니다.
// 값 옵션은 반드시 --name=value 형식이어야 하고, 존재 플래그는 =value를 받지 않습니다.
// 알 수 없는 옵션은 pflag가 거부하도록 그대로 둡니다.
func checkTokens(args []string, fs *pflag.FlagSet) error {
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		name, _, hasValue := strings.Cut(arg[2:], "=")
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if flag.NoOptDefVal == "" && !hasValue {
			return fmt.Errorf("%w: --%s 옵션은 --%s=값 형식으로 지정해야 합니다", config.ErrConfiguration, name, name)
		}
		if flag.NoOptDefVal != "" && hasValue {
			return fmt.Errorf("%w: --%s 옵션은 값을 받지 않습니다: %q", config.ErrConfiguration, name, arg)
		}
	}
	return nil
}
