package extract

import (
	"strings"

	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/document"
)

// Record is one extracted outline row. Label columns left blank by
// fill-down suppression stay blank; absent values are empty strings,
// never null.
type Record struct {
	Level1Name          string `json:"level1_name"`
	Level2Name          string `json:"level2_name"`
	Level3Name          string `json:"level3_name"`
	BidDescription      string `json:"bid_description"`
	ContractDescription string `json:"contract_description"`
	SourceFile          string `json:"source_file"`
}

// Description returns whichever description column is populated.
func (r Record) Description() string {
	if r.BidDescription != "" {
		return r.BidDescription
	}
	return r.ContractDescription
}

// SetDescription places text in the column the document class calls
// for: bid material fills 标书描述, contract material fills 合同描述.
func (r *Record) SetDescription(class document.Class, text string) {
	if class == document.ClassContract {
		r.ContractDescription = text
		return
	}
	r.BidDescription = text
}

// isBlank reports whether the record carries no content in any label
// or description column. The source file does not count: a record
// that only knows where it came from says nothing.
func (r Record) isBlank() bool {
	for _, s := range [...]string{
		r.Level1Name, r.Level2Name, r.Level3Name,
		r.BidDescription, r.ContractDescription,
	} {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}

// dropBlank filters out records with no content.
func dropBlank(records []Record) []Record {
	out := records[:0]
	for _, r := range records {
		if !r.isBlank() {
			out = append(out, r)
		}
	}
	return out
}
