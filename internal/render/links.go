package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	kb = 1024
	mb = kb * 1024
	gb = mb * 1024
)

// HumanSize renders a byte count the way posts display it: two-decimal
// GB at a gigabyte and above, whole MB below.
func HumanSize(n int64) string {
	if n >= gb {
		return fmt.Sprintf("%.2f GB", float64(n)/gb)
	}
	return fmt.Sprintf("%d MB", int64(float64(n)/mb+0.5))
}

// TotalSizeGB always renders in GB, used for folder aggregates.
func TotalSizeGB(n int64) string {
	return fmt.Sprintf("%.2f GB", float64(n)/gb)
}

// ApproxSize is the terminal-friendly IEC rendering used by preview
// output, not by the post markup.
func ApproxSize(n int64) string {
	return humanize.IBytes(uint64(n))
}

// ShowFileURL builds the download URL for one file.
func ShowFileURL(base, folderBasename, filename string) string {
	return base + quoteSafe(folderBasename+"/"+filename)
}

// TorrentURL builds the batch torrent URL for a folder.
func TorrentURL(base, folderBasename string) string {
	return base + quoteSafe(folderBasename+".torrent")
}

// quoteSafe percent-encodes a URL path, leaving slashes, brackets, and
// parentheses intact since the file host serves them literally.
func quoteSafe(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		if isUnreservedByte(b) || strings.IndexByte("/[]()", b) != -1 {
			sb.WriteByte(b)
			continue
		}
		fmt.Fprintf(&sb, "%%%02X", b)
	}
	return sb.String()
}

func isUnreservedByte(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_' || b == '.' || b == '-' || b == '~'
}
