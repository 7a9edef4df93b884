// Package config manages user-level settings stored at ~/.officegen/config.yaml.
// Settings supply defaults for generation flags such as the dev server host
// and the client technology; flags given on the command line win.
package config
