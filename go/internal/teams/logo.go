package teams

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

const MaxLogoSize = 5 * 1024 * 1024

var allowedLogoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func validateLogo(logo *LogoUpload) error {
	if !allowedLogoTypes[strings.ToLower(logo.ContentType)] {
		return invalid("logo", "please upload a valid image file (JPEG, PNG, GIF, or WebP)")
	}
	if logo.Size > MaxLogoSize {
		return invalid("logo", "file size must be less than 5MB")
	}
	if logo.Body == nil {
		return invalid("logo", "file is empty")
	}
	return nil
}

// LogoKey is the object key of a team's logo: <owner>/<team>.<ext>
func LogoKey(ownerID, teamID uuid.UUID, fileName string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(fileName), "."))
	if ext == "" {
		ext = "png"
	}
	return fmt.Sprintf("%s/%s.%s", ownerID, teamID, ext)
}
