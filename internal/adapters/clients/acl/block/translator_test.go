package block

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/notion-page-service/internal/domain"
	dompage "github.com/jsamuelsen11/notion-page-service/internal/domain/page"
)

func TestToDTO_Payloads(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		block dompage.Block
		want  string
	}{
		{
			name:  "paragraph",
			block: dompage.Block{Type: dompage.BlockParagraph, Value: dompage.PlainText("Hello")},
			want:  `{"object":"block","type":"paragraph","paragraph":{"rich_text":[{"type":"text","text":{"content":"Hello"}}]}}`,
		},
		{
			name:  "empty heading",
			block: dompage.Block{Type: dompage.BlockHeading2, Value: dompage.PlainText("")},
			want:  `{"object":"block","type":"heading_2","heading_2":{"rich_text":[]}}`,
		},
		{
			name:  "image",
			block: dompage.Block{Type: dompage.BlockImage, Value: dompage.Media{URL: "https://x/cat.png"}},
			want:  `{"object":"block","type":"image","image":{"type":"external","external":{"url":"https://x/cat.png"}}}`,
		},
		{
			name:  "file with name",
			block: dompage.Block{Type: dompage.BlockFile, Value: dompage.Media{Name: "a.zip", URL: "https://x/a.zip"}},
			want:  `{"object":"block","type":"file","file":{"name":"a.zip","type":"external","external":{"url":"https://x/a.zip"}}}`,
		},
		{
			name:  "code",
			block: dompage.Block{Type: dompage.BlockCode, Value: dompage.Code{Content: "fmt.Println()", Language: "go"}},
			want:  `{"object":"block","type":"code","code":{"rich_text":[{"type":"text","text":{"content":"fmt.Println()"}}],"language":"go"}}`,
		},
		{
			name:  "divider",
			block: dompage.Block{Type: dompage.BlockDivider, Value: dompage.Empty{}},
			want:  `{"object":"block","type":"divider","divider":{}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dto, err := ToDTO(tt.block)
			require.NoError(t, err)

			got, err := json.Marshal(dto)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestToDTO_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		block dompage.Block
	}{
		{name: "unknown type", block: dompage.Block{Type: "synced_block", Value: dompage.PlainText("x")}},
		{name: "unknown type with opaque value", block: dompage.Block{Type: "column", Value: dompage.UnsupportedBlock{Raw: []byte(`{}`)}}},
		{name: "text type with media value", block: dompage.Block{Type: dompage.BlockQuote, Value: dompage.Media{URL: "https://x"}}},
		{name: "missing value", block: dompage.Block{Type: dompage.BlockParagraph}},
		{name: "named image", block: dompage.Block{Type: dompage.BlockImage, Value: dompage.Media{Name: "a", URL: "https://x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ToDTO(tt.block)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestRoundTrip_AllTypes(t *testing.T) {
	t.Parallel()

	blocks := []dompage.Block{
		{Type: dompage.BlockParagraph, Value: dompage.PlainText("p")},
		{Type: dompage.BlockHeading1, Value: dompage.PlainText("h1")},
		{Type: dompage.BlockHeading2, Value: dompage.PlainText("h2")},
		{Type: dompage.BlockHeading3, Value: dompage.PlainText("h3")},
		{Type: dompage.BlockBulletedListItem, Value: dompage.PlainText("bullet")},
		{Type: dompage.BlockNumberedListItem, Value: dompage.PlainText("number")},
		{Type: dompage.BlockToDo, Value: dompage.PlainText("todo")},
		{Type: dompage.BlockToggle, Value: dompage.PlainText("toggle")},
		{Type: dompage.BlockQuote, Value: dompage.PlainText("quote")},
		{Type: dompage.BlockCallout, Value: dompage.PlainText("callout")},
		{Type: dompage.BlockImage, Value: dompage.Media{URL: "https://x/i.png"}},
		{Type: dompage.BlockVideo, Value: dompage.Media{URL: "https://x/v.mp4"}},
		{Type: dompage.BlockAudio, Value: dompage.Media{URL: "https://x/a.mp3"}},
		{Type: dompage.BlockPDF, Value: dompage.Media{URL: "https://x/d.pdf"}},
		{Type: dompage.BlockFile, Value: dompage.Media{Name: "f.zip", URL: "https://x/f.zip"}},
		{Type: dompage.BlockCode, Value: dompage.Code{Content: "SELECT 1", Language: "sql"}},
		{Type: dompage.BlockDivider, Value: dompage.Empty{}},
	}

	for _, b := range blocks {
		t.Run(b.Type.String(), func(t *testing.T) {
			t.Parallel()

			dto, err := ToDTO(b)
			require.NoError(t, err)

			wire, err := json.Marshal(dto)
			require.NoError(t, err)

			var back DTO
			require.NoError(t, json.Unmarshal(wire, &back))

			got, err := ToDomain(back)
			require.NoError(t, err)
			assert.Equal(t, b, got)
		})
	}
}

func TestToDomain_ReadShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want dompage.Block
	}{
		{
			name: "first run only",
			raw: `{"object":"block","id":"b1","type":"paragraph","has_children":false,"paragraph":{"rich_text":[
				{"type":"text","text":{"content":"one"},"plain_text":"one"},
				{"type":"text","text":{"content":"two"},"plain_text":"two"}]}}`,
			want: dompage.Block{ID: "b1", Type: dompage.BlockParagraph, Value: dompage.PlainText("one")},
		},
		{
			name: "to_do ignores checked",
			raw:  `{"object":"block","id":"b2","type":"to_do","to_do":{"rich_text":[{"type":"text","plain_text":"ship"}],"checked":true}}`,
			want: dompage.Block{ID: "b2", Type: dompage.BlockToDo, Value: dompage.PlainText("ship")},
		},
		{
			name: "hosted image",
			raw:  `{"object":"block","id":"b3","type":"image","image":{"type":"file","file":{"url":"https://s3/i.png","expiry_time":"2024-01-01T00:00:00Z"}}}`,
			want: dompage.Block{ID: "b3", Type: dompage.BlockImage, Value: dompage.Media{URL: "https://s3/i.png"}},
		},
		{
			name: "code joins runs",
			raw:  `{"object":"block","id":"b4","type":"code","code":{"rich_text":[{"type":"text","plain_text":"a"},{"type":"text","plain_text":"b"}],"language":"plain text"}}`,
			want: dompage.Block{ID: "b4", Type: dompage.BlockCode, Value: dompage.Code{Content: "ab", Language: "plain text"}},
		},
		{
			name: "unknown type is opaque",
			raw:  `{"object":"block","id":"b5","type":"table_of_contents","table_of_contents":{"color":"gray"}}`,
			want: dompage.Block{ID: "b5", Type: "table_of_contents", Value: dompage.UnsupportedBlock{Raw: []byte(`{"color":"gray"}`)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var dto DTO
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &dto))

			got, err := ToDomain(dto)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToDomain_MalformedPayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "missing text payload", raw: `{"id":"b","type":"paragraph"}`},
		{name: "rich_text not an array", raw: `{"id":"b","type":"quote","quote":{"rich_text":"x"}}`},
		{name: "media without url", raw: `{"id":"b","type":"video","video":{"type":"file_upload"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var dto DTO
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &dto))

			_, err := ToDomain(dto)
			require.ErrorIs(t, err, domain.ErrDecode)
		})
	}
}
