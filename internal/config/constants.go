package config

// Base application details
const AppName = "codeview"
const SchemesDirName = "schemes"
const DefaultConfigFileName = "config.toml"

// These could be moved to NewDefaultConfig(), keeping here for now
const DefaultTabWidth = 4
const DefaultLexer = "auto"
const DefaultHighlightMode = "chroma"
const SystemClipboard = false
