package assets

import (
	"embed"

	"fyne.io/fyne/v2"
)

//go:embed devlink.svg
var assetsFS embed.FS

// GetAppIconResource returns the DevLink icon for windows and the tray.
func GetAppIconResource() fyne.Resource {
	data, err := assetsFS.ReadFile("devlink.svg")
	if err != nil {
		return nil
	}
	return fyne.NewStaticResource("devlink.svg", data)
}
