package config

import (
	"bytes"
	"fmt"
	"strconv"
)

// ProjectFileName is the project configuration file written by Template.
const ProjectFileName = ".mdtouch.yml"

// Template returns a commented project configuration holding the defaults.
func Template() []byte {
	def := NewConfig()

	var buf bytes.Buffer
	buf.WriteString("# mdtouch configuration\n")
	buf.WriteString("# Settings here override the user config and are overridden by MDTOUCH_* variables and flags.\n\n")

	entry(&buf, "Recognize [[wiki links]] as links.", "wiki_links", strconv.FormatBool(def.WikiLinksEnabled()))
	entry(&buf, "Guess the language of code fences without an info string.", "detect_language",
		strconv.FormatBool(def.LanguageDetectionEnabled()))
	entry(&buf, "Log level: debug, info, warn or error.", "log_level", def.LogLevel)
	entry(&buf, "Colour output: auto, always or never.", "color", string(def.Color))

	buf.WriteString("# Copy the original file aside before the first save.\n")
	buf.WriteString("backup:\n")
	fmt.Fprintf(&buf, "  enabled: %t\n", def.BackupEnabled())
	fmt.Fprintf(&buf, "  suffix: %q\n\n", def.Backup.Suffix)

	buf.WriteString("# HTML export of [[wiki links]]: base URL + name + extension.\n")
	buf.WriteString("export:\n")
	buf.WriteString("  wiki_base_url: \"\"\n")
	fmt.Fprintf(&buf, "  wiki_extension: %q\n", def.Export.WikiExtension)

	return buf.Bytes()
}

func entry(buf *bytes.Buffer, comment, key, value string) {
	fmt.Fprintf(buf, "# %s\n%s: %s\n\n", comment, key, value)
}
