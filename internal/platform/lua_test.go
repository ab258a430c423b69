package platform

import (
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestInjectPlatformTable_Linux(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	info := &Info{
		OS:            "linux",
		Arch:          "amd64",
		ArchRaw:       "amd64",
		Distro:        "ubuntu",
		DistroVersion: "22.04",
	}

	if err := InjectPlatformTable(L, info); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}

	tests := []struct {
		name string
		code string
		want lua.LValue
	}{
		{"os", `return platform.os`, lua.LString("linux")},
		{"arch", `return platform.arch`, lua.LString("amd64")},
		{"arch_raw", `return platform.arch_raw`, lua.LString("amd64")},
		{"is_linux", `return platform.is_linux`, lua.LTrue},
		{"is_macos", `return platform.is_macos`, lua.LFalse},
		{"is_windows", `return platform.is_windows`, lua.LFalse},
		{"frida_os", `return platform.frida_os`, lua.LString("linux")},
		{"frida_arch", `return platform.frida_arch`, lua.LString("x86_64")},
		{"host", `return platform.host`, lua.LString("linux-x86_64")},
		{"distro.id", `return platform.distro.id`, lua.LString("ubuntu")},
		{"distro.version", `return platform.distro.version`, lua.LString("22.04")},
		{"when_true", `return platform.when(true, "x")`, lua.LString("x")},
		{"when_false", `return platform.when(false, "x")`, lua.LNil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := L.DoString(tt.code); err != nil {
				t.Fatalf("failed to execute code: %v", err)
			}
			got := L.Get(-1)
			L.Pop(1)

			if got.Type() != tt.want.Type() {
				t.Errorf("type mismatch: got %v, want %v", got.Type(), tt.want.Type())
				return
			}
			if got.String() != tt.want.String() {
				t.Errorf("value mismatch: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInjectPlatformTable_MacOSHasNoDistro(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := InjectPlatformTable(L, &Info{OS: "darwin", Arch: "arm64"}); err != nil {
		t.Fatal(err)
	}

	if err := L.DoString(`return platform.distro == nil and platform.host == "macos-arm64"`); err != nil {
		t.Fatal(err)
	}
	if got := L.Get(-1); got != lua.LTrue {
		t.Errorf("expected nil distro and macos-arm64 host, got %v", got)
	}
}

func TestInjectPlatformTable_ReadOnly(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := InjectPlatformTable(L, &Info{OS: "linux", Arch: "arm64"}); err != nil {
		t.Fatal(err)
	}

	for _, code := range []string{
		`platform.os = "windows"`,
		`platform.new_field = 1`,
		`setmetatable(platform, {})`,
	} {
		err := L.DoString(code)
		if err == nil {
			t.Errorf("expected error for %q", code)
			continue
		}
		if strings.Contains(code, "setmetatable") {
			continue
		}
		if !strings.Contains(err.Error(), "read-only") {
			t.Errorf("unexpected error for %q: %v", code, err)
		}
	}
}
