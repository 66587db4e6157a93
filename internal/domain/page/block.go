package page

// BlockType identifies the kind of a content block.
type BlockType string

// Text-bearing block types.
const (
	BlockParagraph        BlockType = "paragraph"
	BlockHeading1         BlockType = "heading_1"
	BlockHeading2         BlockType = "heading_2"
	BlockHeading3         BlockType = "heading_3"
	BlockBulletedListItem BlockType = "bulleted_list_item"
	BlockNumberedListItem BlockType = "numbered_list_item"
	BlockToDo             BlockType = "to_do"
	BlockToggle           BlockType = "toggle"
	BlockQuote            BlockType = "quote"
	BlockCallout          BlockType = "callout"
)

// Media, code and structural block types.
const (
	BlockImage   BlockType = "image"
	BlockVideo   BlockType = "video"
	BlockAudio   BlockType = "audio"
	BlockPDF     BlockType = "pdf"
	BlockFile    BlockType = "file"
	BlockCode    BlockType = "code"
	BlockDivider BlockType = "divider"
)

// IsText reports whether the block carries a single plain-text payload.
func (t BlockType) IsText() bool {
	switch t {
	case BlockParagraph, BlockHeading1, BlockHeading2, BlockHeading3,
		BlockBulletedListItem, BlockNumberedListItem, BlockToDo, BlockToggle,
		BlockQuote, BlockCallout:
		return true
	default:
		return false
	}
}

// IsMedia reports whether the block references an external file by URL.
func (t BlockType) IsMedia() bool {
	switch t {
	case BlockImage, BlockVideo, BlockAudio, BlockPDF, BlockFile:
		return true
	default:
		return false
	}
}

// IsKnown reports whether the type is modeled by this service.
func (t BlockType) IsKnown() bool {
	return t.IsText() || t.IsMedia() || t == BlockCode || t == BlockDivider
}

// String implements fmt.Stringer.
func (t BlockType) String() string {
	return string(t)
}

// BlockValue is the closed set of block payloads.
type BlockValue interface {
	isBlockValue()
}

// PlainText is the payload of text-bearing blocks.
type PlainText string

// Media references an external file. Name is only carried by file blocks.
type Media struct {
	Name string
	URL  string
}

// Code is the payload of code blocks. Language is passed through verbatim.
type Code struct {
	Content  string
	Language string
}

// Empty is the payload of blocks without content, such as dividers.
type Empty struct{}

// UnsupportedBlock is produced on read for block types this service does not
// model. Type on the owning Block holds the raw tag.
type UnsupportedBlock struct {
	Raw []byte
}

func (PlainText) isBlockValue()        {}
func (Media) isBlockValue()            {}
func (Code) isBlockValue()             {}
func (Empty) isBlockValue()            {}
func (UnsupportedBlock) isBlockValue() {}

// Block is one unit of page content. ID is assigned by the document service
// on creation and only populated on read.
type Block struct {
	ID    string
	Type  BlockType
	Value BlockValue
}

// Matches reports whether the block's value has the shape its type expects.
func (b Block) Matches() bool {
	switch b.Value.(type) {
	case PlainText:
		return b.Type.IsText()
	case Media:
		return b.Type.IsMedia()
	case Code:
		return b.Type == BlockCode
	case Empty:
		return b.Type == BlockDivider
	case UnsupportedBlock:
		return !b.Type.IsKnown()
	default:
		return false
	}
}
