package zone

import (
	"os"
	"strings"
	"time"
)

const localtimeLink = "/etc/localtime"

// Local returns the viewer's timezone identifier. It checks the TZ
// environment variable, then the /etc/localtime symlink, then the name of
// time.Local, and falls back to UTC when none is a loadable IANA identifier.
func Local() ID {
	link, _ := os.Readlink(localtimeLink)
	return detectLocal(os.Getenv("TZ"), link, time.Local.String())
}

func detectLocal(tzEnv, link, localName string) ID {
	if tz := strings.TrimPrefix(tzEnv, ":"); tz != "" && Valid(ID(tz)) {
		return ID(tz)
	}

	if i := strings.LastIndex(link, "zoneinfo/"); i >= 0 {
		name := ID(link[i+len("zoneinfo/"):])
		if Valid(name) {
			return name
		}
	}

	if Valid(ID(localName)) {
		return ID(localName)
	}

	return UTC
}
