package logger

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strconv"

	"payout/api/internal/config"

	"github.com/golang-cz/devslog"
	"github.com/google/uuid"
)

// Logger prints through slog and best effort ships the structured
// payload to a Parseable logstream when PARSEABLE_URL is set.
type Logger struct {
	shipUrl    string
	authBearer string
	client     *http.Client
}

func Init(config *config.Config) Logger {
	slogOpts := &slog.HandlerOptions{}

	if !config.Prod_env {
		slogOpts.Level = slog.LevelDebug
	}

	// new logger with options
	opts := &devslog.Options{
		HandlerOptions:    slogOpts,
		MaxSlicePrintSize: 4,
		SortKeys:          true,
		NewLineAfterLog:   true,
	}

	logger := slog.New(devslog.NewHandler(os.Stdout, opts))

	slog.SetDefault(logger)

	l := Logger{client: &http.Client{}}
	if url := os.Getenv("PARSEABLE_URL"); url != "" {
		l.shipUrl = url + "/api/v1/logstream/"
		l.authBearer = base64.RawStdEncoding.EncodeToString([]byte(os.Getenv("PARSEABLE_USERNAME") + ":" + os.Getenv("PARSEABLE_PASSWORD")))
	}

	return l
}

// example Info("Withdrawal requested", LS_WITHDRAWALS, false, "reference", "WD-...")
func (l Logger) Info(message string, logStream Logstream, isTemplate bool, args ...any) {
	var skip int

	const ll = LL_INFO

	if isTemplate {
		skip = 2
	} else {
		skip = 1
	}

	pc, file, line, _ := runtime.Caller(skip)
	log, err := l.formatLog(LL_INFO, message, pc, file, line, args...)
	if err != nil {
		fmt.Printf("%s:%d: format log error: %v\n", file, line, err)
		return
	}

	printLog(ll, message, file, line, args...)
	go l.shipLog(log, logStream)
}

// example Error("Withdrawal claim failed", LS_WITHDRAWALS, false, "error", "error text")
func (l Logger) Error(message string, logStream Logstream, isTemplate bool, args ...any) {
	var skip int

	const ll = LL_ERROR

	if isTemplate {
		skip = 2
	} else {
		skip = 1
	}

	pc, file, line, _ := runtime.Caller(skip)

	log, err := l.formatLog(LL_ERROR, message, pc, file, line, args...)
	if err != nil {
		fmt.Printf("%s:%d: format log error: %v\n", file, line, err)
		return
	}

	printLog(ll, message, file, line, args...)
	go l.shipLog(log, logStream)
}

// ships synchronously, callers usually stop the process right after
func (l Logger) Fatal(message string, logStream Logstream, isTemplate bool, args ...any) {
	var skip int

	const ll = LL_FATAL

	if isTemplate {
		skip = 2
	} else {
		skip = 1
	}

	pc, file, line, _ := runtime.Caller(skip)
	log, err := l.formatLog(LL_FATAL, message, pc, file, line, args...)
	if err != nil {
		fmt.Printf("%s:%d: format log error: %v\n", file, line, err)
		return
	}

	printLog(ll, message, file, line, args...)
	l.shipLog(log, logStream)
}

func (l Logger) Debug(message string, args ...any) {
	_, file, line, _ := runtime.Caller(1)

	printLog(LL_DEBUG, message, file, line, args...)
}

func printLog(ll LogLevel, message string, file string, line int, args ...any) {
	args = append(args, "source", file+":"+strconv.Itoa(line))
	switch ll {
	case LL_ERROR:
		slog.Error(message, args...)
	case LL_INFO:
		slog.Info(message, args...)
	case LL_FATAL:
		slog.Error(message, args...)
	case LL_DEBUG:
		slog.Debug(message, args...)
	}

}

func (l Logger) shipLog(buffer []byte, logstream Logstream) {
	if l.shipUrl == "" {
		return
	}

	req, err := http.NewRequest("POST", l.shipUrl+logstream.ToString(), bytes.NewBuffer(buffer))
	if err != nil {
		fmt.Println("Error creating request:", err)
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+l.authBearer)

	resp, err := l.client.Do(req)
	if err != nil {
		fmt.Println("Error sending:", err)
		return
	}
	resp.Body.Close()
}

func (l Logger) formatLog(ll LogLevel, message string, pc uintptr, file string, line int, args ...any) (log []byte, err error) {
	callerFunc := runtime.FuncForPC(pc).Name()

	logLevel := ll.ToString()

	logMessage := LogMessage{
		Message:  message,
		LogLevel: logLevel,
		Args:     make(map[string]interface{}),
		Source: Source{
			Function: callerFunc,
			File:     file,
			Line:     line,
		},
		AppInfo: AppInfo{
			Pid:       os.Getpid(),
			GoVersion: runtime.Version(),
		},
	}

	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			return nil, fmt.Errorf("the key must be a string: %s", args[i])
		}
		value := args[i+1]
		logMessage.Args[key] = value
	}

	b, err := json.Marshal(logMessage)
	if err != nil {
		return nil, err
	}

	return b, nil
}

func AnyToStr(t any) string {
	return fmt.Sprintf("%v", t)
}

func GenErrorId() string {
	var errorId string
	uuid, err := uuid.NewRandom()
	if err != nil {
		errorId = NA
	} else {
		errorId = uuid.String()
	}
	return errorId
}
