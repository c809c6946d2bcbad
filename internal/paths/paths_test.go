package paths

import (
	"testing"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

func TestResolveDBPath(t *testing.T) {
	cases := []struct {
		name   string
		flag   string
		config string
		env    string
		want   string
	}{
		{"flag wins", "flag.db", "config.db", "env.db", "flag.db"},
		{"config over env", "", "config.db", "env.db", "config.db"},
		{"env over default", "", "", "env.db", "env.db"},
		{"default", "", "", "", types.DefaultDBPath},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(EnvDBPath, tc.env)
			if got := ResolveDBPath(tc.flag, tc.config); got != tc.want {
				t.Errorf("ResolveDBPath(%q, %q) = %q, want %q", tc.flag, tc.config, got, tc.want)
			}
		})
	}
}
