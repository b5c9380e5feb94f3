package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type config struct {
	Targets []target `json:"targets"`
	// Ignore lists JSON keys whose values differ between runs on both sides.
	Ignore []string `json:"ignore"`
}

type comparison struct {
	Target         target
	LegacyStatus   int
	GoStatus       int
	StatusMatch    bool
	BodyMatch      bool
	Error          error
	DurationGo     time.Duration
	DurationLegacy time.Duration
}

// defaultConfig covers the read-only endpoints both backends serve.
var defaultConfig = config{
	Targets: []target{
		{Method: http.MethodGet, Path: "/api/setup", Critical: true},
		{Method: http.MethodGet, Path: "/api/auth/session", Critical: true},
		{Method: http.MethodGet, Path: "/api/dashboard", Critical: true},
		{Method: http.MethodGet, Path: "/api/staff", Critical: true},
		{Method: http.MethodGet, Path: "/api/academic-terms", Critical: true},
		{Method: http.MethodGet, Path: "/api/academic-terms/active"},
		{Method: http.MethodGet, Path: "/api/subjects", Critical: true},
		{Method: http.MethodGet, Path: "/api/schedules"},
		{Method: http.MethodGet, Path: "/api/students?page=1&pageSize=20", Critical: true},
		{Method: http.MethodGet, Path: "/api/courses"},
		{Method: http.MethodGet, Path: "/api/sections"},
		{Method: http.MethodGet, Path: "/api/settings"},
	},
	Ignore: []string{"createdAt", "updatedAt", "expiresAt", "generatedAt", "requestId", "pictureUrl"},
}

type session struct {
	name  string
	value string
}

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		cookieName  string
		cookieValue string
		timeout     time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3000", "Legacy API base URL")
	flag.StringVar(&targetsPath, "targets", "", "Path to JSON targets file (built-in list when empty)")
	flag.StringVar(&cookieName, "cookie-name", "auth-session", "Session cookie name sent to both backends")
	flag.StringVar(&cookieValue, "cookie", os.Getenv("SHADOW_SESSION"), "Session token sent to both backends")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	cfg, err := loadConfig(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	auth := session{name: cookieName, value: cookieValue}
	ignore := make(map[string]struct{}, len(cfg.Ignore))
	for _, key := range cfg.Ignore {
		ignore[key] = struct{}{}
	}

	var (
		comparisons  []comparison
		breaking     int
		optionalDiff int
	)

	for _, t := range cfg.Targets {
		comp := compareTarget(client, auth, ignore, goBase, legacyBase, t)
		switch {
		case comp.Error != nil:
			if t.Critical {
				breaking++
			}
		case !comp.StatusMatch || !comp.BodyMatch:
			if t.Critical {
				breaking++
			} else {
				optionalDiff++
			}
		}
		comparisons = append(comparisons, comp)
	}

	printReport(comparisons)

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optionalDiff)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadConfig(path string) (config, error) {
	if path == "" {
		return defaultConfig, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return config{}, err
	}
	if len(cfg.Targets) == 0 {
		return config{}, fmt.Errorf("no targets defined in %s", path)
	}
	if cfg.Ignore == nil {
		cfg.Ignore = defaultConfig.Ignore
	}
	return cfg, nil
}

func compareTarget(client *http.Client, auth session, ignore map[string]struct{}, goBase, legacyBase string, tgt target) comparison {
	comp := comparison{Target: tgt}
	goStatus, goBody, goDur, goErr := fetch(client, auth, goBase, tgt)
	legacyStatus, legacyBody, legacyDur, legacyErr := fetch(client, auth, legacyBase, tgt)
	comp.DurationGo = goDur
	comp.DurationLegacy = legacyDur

	if goErr != nil {
		comp.Error = fmt.Errorf("go request failed: %w", goErr)
		return comp
	}
	if legacyErr != nil {
		comp.Error = fmt.Errorf("legacy request failed: %w", legacyErr)
		return comp
	}

	comp.GoStatus = goStatus
	comp.LegacyStatus = legacyStatus
	comp.StatusMatch = goStatus == legacyStatus
	comp.BodyMatch = bodiesEqual(goBody, legacyBody, ignore)
	return comp
}

func fetch(client *http.Client, auth session, base string, tgt target) (int, []byte, time.Duration, error) {
	if client == nil {
		return 0, nil, 0, errors.New("nil client")
	}
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	if auth.value != "" {
		req.AddCookie(&http.Cookie{Name: auth.name, Value: auth.value})
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, time.Since(start), nil
}

func bodiesEqual(a, b []byte, ignore map[string]struct{}) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	normalize(&aj, ignore)
	normalize(&bj, ignore)
	return reflect.DeepEqual(aj, bj)
}

func normalize(v *interface{}, ignore map[string]struct{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k, v2 := range val {
			if _, skip := ignore[k]; skip {
				delete(val, k)
				continue
			}
			normalize(&v2, ignore)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2, ignore)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func printReport(results []comparison) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("======================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		fmt.Printf("  Go Status: %d (%s)\n", res.GoStatus, res.DurationGo)
		fmt.Printf("  Legacy Status: %d (%s)\n", res.LegacyStatus, res.DurationLegacy)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
		} else {
			fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
		}
	}
}
