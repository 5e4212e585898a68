package model

// BlockType 课时内容块类型，封闭集合
type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockCode      BlockType = "code"
	BlockVideo     BlockType = "video"
	BlockMCQ       BlockType = "mcq"
)

// ContentBlock 一个带类型标签的课时内容单元。
// 各类型使用的字段：
//   - heading / paragraph: Text
//   - code:  Language（仅作提示，不校验取值）, Text
//   - video: Query 和/或 URL
//   - mcq:   Question, Options, Answer（必须是 Options 的合法下标）, Explanation
//
// swagger:model ContentBlock
type ContentBlock struct {
	Type        BlockType `json:"type"`
	Text        string    `json:"text,omitempty"`
	Language    string    `json:"language,omitempty"`
	Query       string    `json:"query,omitempty"`
	URL         string    `json:"url,omitempty"`
	Question    string    `json:"question,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Answer      *int      `json:"answer,omitempty"`
	Explanation string    `json:"explanation,omitempty"`
}

// KnownBlockType 判断类型标签是否属于封闭集合
func KnownBlockType(t BlockType) bool {
	switch t {
	case BlockHeading, BlockParagraph, BlockCode, BlockVideo, BlockMCQ:
		return true
	}
	return false
}
