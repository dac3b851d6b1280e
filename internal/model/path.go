// Package model defines the data structures shared by the class rewriting
// tools: mappings, variability bindings, decisions, run reports and the
// error log.
package model

// Path represents a file system path.
type Path string

// ClassPath is an ordered search path of directories and JAR files.
type ClassPath []Path
