package gopsd

/*------------------------------------------------------------------
 *
 * Purpose:   	Optional configuration file for the client tools.
 *
 * Description: Command line flags cover everything, but people who run
 *		the logger on a headless box don't want to retype the
 *		daemon address and logging policy every time.  A small
 *		YAML file supplies defaults; flags still win.
 *
 *		    host: gps-box.local
 *		    port: "2947"
 *		    logdir: /var/log/tracks
 *		    minmove: 25.0
 *		    timeout: 600
 *
 *		Every key is optional.  A missing or unreadable file is
 *		not an error, just zero values.
 *
 *------------------------------------------------------------------*/

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const CLIENT_CONFIG_NAME = ".gopsd.yaml"

type client_config_t struct {
	Host    string  `yaml:"host"`
	Port    string  `yaml:"port"`
	Logdir  string  `yaml:"logdir"`
	Minmove float64 `yaml:"minmove"` /* meters */
	Timeout int     `yaml:"timeout"` /* seconds */
}

/*------------------------------------------------------------------
 *
 * Function:	client_config_load
 *
 * Purpose:	Read the per-user configuration file, if there is one.
 *
 * Description:	Looks in the current working directory first, then the
 *		home directory.  Reading at run time instead of baking
 *		defaults in keeps one binary usable on several boxes.
 *
 *------------------------------------------------------------------*/

func client_config_load() *client_config_t {
	var locations = []string{CLIENT_CONFIG_NAME}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, CLIENT_CONFIG_NAME))
	}

	for _, location := range locations {
		if config, err := client_config_read(location); err == nil {
			gpsd_report(LOG_PROG, "config: using %q", location)
			return config
		}
	}
	return new(client_config_t)
}

func client_config_read(path string) (*client_config_t, error) {
	var data, err = os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config = new(client_config_t)
	if unmarshallErr := yaml.Unmarshal(data, config); unmarshallErr != nil {
		gpsd_report(LOG_WARN, "config: %q is not valid YAML: %s", path, unmarshallErr)
		return nil, unmarshallErr
	}
	return config, nil
}
