package playground

import (
	"testing"

	goversion "github.com/hashicorp/go-version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownVersions_SortedAscending(t *testing.T) {
	versions := KnownVersions()
	require.NotEmpty(t, versions)

	for i := 1; i < len(versions); i++ {
		prev, err := goversion.NewVersion(versions[i-1])
		require.NoError(t, err)
		cur, err := goversion.NewVersion(versions[i])
		require.NoError(t, err)
		assert.True(t, prev.LessThan(cur), "%s should sort before %s", versions[i-1], versions[i])
	}

	assert.Equal(t, versions[len(versions)-1], LatestVersion())
	assert.Equal(t, DefaultKyselyVersion, LatestVersion())
}

func TestResolveVersion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "exact known version", in: "0.26.3", want: "0.26.3"},
		{name: "unknown patch rounds down", in: "0.26.1", want: "0.25.0"},
		{name: "newer than everything", in: "9.9.9", want: LatestVersion()},
		{name: "older than everything", in: "0.1.0", want: KnownVersions()[0]},
		{name: "garbage", in: "not-a-version", want: DefaultKyselyVersion},
		{name: "empty", in: "", want: DefaultKyselyVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveVersion(tt.in))
		})
	}
}
