package icon

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/notion-page-service/internal/domain"
	dompage "github.com/jsamuelsen11/notion-page-service/internal/domain/page"
)

func TestToDTO(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		icon dompage.Icon
		want string
	}{
		{
			name: "emoji",
			icon: dompage.Icon{Kind: dompage.IconEmoji, Value: "🚀"},
			want: `{"type":"emoji","emoji":"🚀"}`,
		},
		{
			name: "external",
			icon: dompage.Icon{Kind: dompage.IconExternal, Value: "https://example.com/icon.png"},
			want: `{"type":"external","external":{"url":"https://example.com/icon.png"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dto, err := ToDTO(tt.icon)
			require.NoError(t, err)
			require.NotNil(t, dto)

			got, err := json.Marshal(dto)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestToDTO_ZeroIcon(t *testing.T) {
	t.Parallel()

	dto, err := ToDTO(dompage.Icon{})
	require.NoError(t, err)
	assert.Nil(t, dto)
}

func TestToDTO_Unwritable(t *testing.T) {
	t.Parallel()

	for _, kind := range []dompage.IconKind{dompage.IconFile, dompage.IconOpaque, "custom_emoji"} {
		t.Run(string(kind), func(t *testing.T) {
			t.Parallel()

			_, err := ToDTO(dompage.Icon{Kind: kind, Value: "x"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrUnsupported), "error = %v, want ErrUnsupported", err)

			var uerr *domain.UnsupportedOperationError
			require.ErrorAs(t, err, &uerr)
			assert.Equal(t, "icon", uerr.Kind)
			assert.Equal(t, string(kind), uerr.Type)
		})
	}
}

func TestToDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want dompage.Icon
	}{
		{
			name: "emoji",
			body: `{"type":"emoji","emoji":"📘"}`,
			want: dompage.Icon{Kind: dompage.IconEmoji, Value: "📘"},
		},
		{
			name: "external",
			body: `{"type":"external","external":{"url":"https://example.com/a.svg"}}`,
			want: dompage.Icon{Kind: dompage.IconExternal, Value: "https://example.com/a.svg"},
		},
		{
			name: "hosted file",
			body: `{"type":"file","file":{"url":"https://s3.example.com/signed","expiry_time":"2025-01-01T00:00:00.000Z"}}`,
			want: dompage.Icon{Kind: dompage.IconFile, Value: "https://s3.example.com/signed"},
		},
		{
			name: "unknown kind is opaque",
			body: `{"type":"custom_emoji","custom_emoji":{"id":"abc","name":"party"}}`,
			want: dompage.Icon{Kind: dompage.IconOpaque, Value: "custom_emoji"},
		},
		{
			name: "external without payload is opaque",
			body: `{"type":"external"}`,
			want: dompage.Icon{Kind: dompage.IconOpaque, Value: "external"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var dto DTO
			require.NoError(t, json.Unmarshal([]byte(tt.body), &dto))
			assert.Equal(t, tt.want, ToDomain(&dto))
		})
	}
}

func TestToDomain_Nil(t *testing.T) {
	t.Parallel()

	assert.True(t, ToDomain(nil).IsZero())
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, ic := range []dompage.Icon{
		{Kind: dompage.IconEmoji, Value: "✅"},
		{Kind: dompage.IconExternal, Value: "https://cdn.example.com/i.png"},
	} {
		dto, err := ToDTO(ic)
		require.NoError(t, err)
		assert.Equal(t, ic, ToDomain(dto))
	}
}
