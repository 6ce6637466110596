package output

import (
	"fmt"
)

func PrintSuccess(text string) {
	fmt.Println(successStyle.Render(text))
}
func PrintError(text string) {
	fmt.Println(errorStyle.Render(text))
}
func PrintWarning(text string) {
	fmt.Println(warningStyle.Render(text))
}
func PrintInfo(text string) {
	fmt.Println(infoStyle.Render(text))
}
func PrintDebug(text string) {
	fmt.Println(debugStyle.Render(text))
}
func PrintTitle(text string) {
	fmt.Println(titleStyle.Render(text))
}

// PrintField prints a "Label: value" line with the label highlighted.
func PrintField(label, value string) {
	fmt.Printf("%s %s\n", labelStyle.Render(label+":"), value)
}
