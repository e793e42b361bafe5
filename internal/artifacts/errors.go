package artifacts

import (
	"fmt"
	"strings"
)

// MissingArtifactsError lists every required file that was absent at load time.
type MissingArtifactsError struct {
	Paths []string
}

func (e *MissingArtifactsError) Error() string {
	return "arquivos faltando: " + strings.Join(e.Paths, ", ")
}

// MalformedArtifactError reports a file that exists but could not be parsed.
type MalformedArtifactError struct {
	Path string
	Err  error
}

func (e *MalformedArtifactError) Error() string {
	return fmt.Sprintf("erro ao carregar %s: %v", e.Path, e.Err)
}

func (e *MalformedArtifactError) Unwrap() error { return e.Err }

func malformed(path string, err error) error {
	return &MalformedArtifactError{Path: path, Err: err}
}
