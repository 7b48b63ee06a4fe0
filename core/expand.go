package core

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"text/template"
)

func expand(value string) (string, error) {
	tmpl, err := template.New("expand_source").
		Funcs(template.FuncMap{
			"env": func(envvar string) string {
				return os.Getenv(envvar)
			},
			"exec": func(line string) (string, error) {
				if strings.Contains(line, " | ") {
					out, err := exec.Command("sh", "-c", line).Output()
					return strings.TrimSpace(string(out)), err
				}

				l := strings.Split(line, " ")
				if len(l) < 1 {
					return "", errors.New("no command provided")
				}
				cmd := l[0]
				args := l[1:]

				out, err := exec.Command(cmd, args...).Output()
				return strings.TrimSpace(string(out)), err
			},
		}).
		Parse(value)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	err = tmpl.Execute(&out, nil)
	if err != nil {
		return "", err
	}

	return out.String(), nil
}

// ExpandSource expands template actions in a source path, e.g.
//
//	{{ env `HOME` }}/logs/site.rdb
//	{{ exec `ls -t /var/log/*.rdb | head -n1` }}
//
// A path that fails to expand is returned unchanged.
func ExpandSource(source string) string {
	ex, err := expand(source)
	if err != nil {
		return source
	}
	return ex
}
