package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_Errors(t *testing.T) {
	tests := []struct {
		name     string
		fileType string
		data     []byte
	}{
		{"empty pdf", FileTypePDF, nil},
		{"not a pdf", FileTypePDF, []byte("plain text pretending to be a pdf")},
		{"not a docx", FileTypeDOCX, []byte("PK but not really a zip")},
		{"unsupported", "rtf", []byte("{\\rtf1}")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractText(tt.fileType, tt.data)
			var ee *ExtractError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, tt.fileType, ee.FileType)
			assert.Empty(t, text)
			assert.Contains(t, err.Error(), "failed to parse "+tt.fileType+" file")
		})
	}
}

func TestDocxXMLToText(t *testing.T) {
	xml := `<w:document><w:body>` +
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>R&amp;D</w:t><w:tab/><w:t>2020</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>line</w:t><w:br/><w:t>break</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	assert.Equal(t, "Jane Doe\nR&D\t2020\nline\nbreak\n", docxXMLToText(xml))
}
