package dataset

import "strings"

// ListCell is a CSV cell holding a serialized list of strings, written the way
// the dataset ETL writes them: ['flour', 'sugar', "baker's yeast"]. The cell
// is parsed exactly once at load time; queries never see the raw text.
type ListCell []string

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (l *ListCell) UnmarshalCSV(cell string) error {
	*l = parseListCell(cell)
	return nil
}

// parseListCell scans a bracketed, quoted list literal. Elements may be
// single- or double-quoted; the other quote character is legal inside an
// element ("baker's yeast"). Malformed cells degrade to a comma split rather
// than failing the whole load.
func parseListCell(cell string) []string {
	s := strings.TrimSpace(cell)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var out []string
	sawQuote := false
	i := 0
	for i < len(s) {
		switch s[i] {
		case '\'', '"':
			sawQuote = true
			quote := s[i]
			j := i + 1
			var b strings.Builder
			for j < len(s) {
				if s[j] == '\\' && j+1 < len(s) {
					b.WriteByte(s[j+1])
					j += 2
					continue
				}
				if s[j] == quote {
					break
				}
				b.WriteByte(s[j])
				j++
			}
			if elem := strings.TrimSpace(b.String()); elem != "" {
				out = append(out, elem)
			}
			i = j + 1
		default:
			i++
		}
	}
	if sawQuote {
		return out
	}

	// No quoting at all: treat the cell as a bare comma-separated list.
	for _, part := range strings.Split(s, ",") {
		if elem := strings.TrimSpace(part); elem != "" {
			out = append(out, elem)
		}
	}
	return out
}
