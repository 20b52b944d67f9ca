package utils

import (
	"errors"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/elbow-jason/stratifiedjs/consts"
	"github.com/elbow-jason/stratifiedjs/term"
	"github.com/tidwall/gjson"
)

const (
	checkFailedPrefix = "Check upgrade failed:\n"
)

var (
	ErrInvalidVersion = errors.New("invalid version")

	remoteVersionFilePath = path.Join(consts.SjsPath, "remote_version")

	client = http.Client{
		Timeout: time.Duration(500 * time.Millisecond),
	}
)

// CheckUpgrade looks for a newer release, at most once every four
// days. The caller adds to wg before spawning it.
func CheckUpgrade(wg *sync.WaitGroup) {
	defer wg.Done()

	if consts.SjsPath == "" {
		return
	}

	stat, err := os.Stat(remoteVersionFilePath)
	if err == nil && stat.ModTime().After(time.Now().Add(-time.Hour*96)) {
		remoteVersionBytes, err := os.ReadFile(remoteVersionFilePath)
		if err != nil {
			return
		}
		IsVersionNewer(string(remoteVersionBytes))
		return
	}

	resp, err := client.Get(consts.ReleaseApiUrl)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return
	}

	body := make([]byte, 0)
	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		body = append(body, buf[:n]...)
		if err != nil {
			break
		}
	}

	newest := gjson.ParseBytes(body).Map()["tag_name"].String()
	if newest == "" {
		term.Warn(checkFailedPrefix + "can't get newest version")
		return
	}

	newest = strings.TrimPrefix(newest, "v")
	IsVersionNewer(newest)
	err = os.WriteFile(remoteVersionFilePath, []byte(newest), 0644)
	if err != nil {
		term.Warn(checkFailedPrefix + err.Error())
	}
}

func IsVersionNewer(get string) {
	if strings.Count(get, ".") != 2 {
		term.Warn(checkFailedPrefix + ErrInvalidVersion.Error())
		return
	}

	nowArr := strings.Split(consts.VERSION, ".")
	getArr := strings.Split(get, ".")
	for i := 0; i < 3; i++ {
		if nowArr[i] == getArr[i] {
			continue
		}
		if nowArr[i] > getArr[i] {
			return
		}
		term.Info("New version available: " + get)
		return
	}
}
