package config

import (
	"flag"
	"net"
	"regexp"
	"strconv"
	"time"
)

const (
	// Primary and secondary sources for a Japanese-glyph-capable TTF.
	defaultFontURL         = "https://cdn.jsdelivr.net/gh/nicolo-ribaudo/noto-fonts-subset@v1/NotoSansJP-Regular.ttf"
	defaultFallbackFontURL = "https://cdn.jsdelivr.net/npm/ipaexfont-gothic@1.0.0/fonts/ipaexg.ttf"
)

type Config struct {
	Addr            string
	GatewayURL      string
	DBUrl           string
	FontURL         string
	FallbackFontURL string
	SessionTTL      time.Duration
	Debug           bool
}

func ParseFlags() (cfg Config, err error) {
	var host string
	flag.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", 8080, "listen port number (default 8080)")
	flag.StringVar(&cfg.GatewayURL, "gateway-url", "", "spreadsheet web app URL (empty runs on local fallbacks only)")
	flag.StringVar(&cfg.DBUrl, "db-url", "kaiyaku.sqlite", "path to SQLite3 fallback store (default kaiyaku.sqlite)")
	flag.StringVar(&cfg.FontURL, "font-url", defaultFontURL, "primary PDF font source")
	flag.StringVar(&cfg.FallbackFontURL, "font-fallback-url", defaultFallbackFontURL, "secondary PDF font source")
	var ttl uint
	flag.UintVar(&ttl, "session-ttl", 1800, "admin session TTL in seconds (default 1800)")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.SessionTTL = time.Duration(ttl) * time.Second

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
