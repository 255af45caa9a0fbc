// Package scrape defines the browser-driver collaborator surface consumed
// by scraping applications. The driver itself (browser control, network
// interception, certificate trust) lives in an external automation
// library; this package only fixes the contract tsutils code programs
// against.
// scrape 包定义抓取应用所消费的浏览器驱动协作接口。驱动本身（浏览器控制、
// 网络拦截、证书信任）由外部自动化库实现；本包仅固定 tsutils 代码所依赖的契约。
package scrape

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Response is the outcome of a navigation, assembled from the window and
// request contents.
// Response 是一次导航的结果，由窗口与请求内容组装而成。
type Response struct {
	StatusCode int
	URL        string
	Body       []byte
	Headers    map[string]string
}

// Driver is a handle to a live browser-automation session.
// Driver 是一个活动浏览器自动化会话的句柄。
type Driver interface {
	// Get navigates to the given URL.
	Get(ctx context.Context, url string) error

	// FindXPath returns the text content of the element at the xpath.
	FindXPath(xpath string) (string, error)

	// ClickXPath performs a click on the element at the xpath.
	ClickXPath(xpath string) error

	// CheckXPath reports whether an element at the xpath is loaded.
	CheckXPath(xpath string) bool

	// Response builds a Response from the current window contents.
	Response() (*Response, error)

	// Close tears down the session.
	Close() error
}

// Factory constructs a session from a driver binary resolvable via the
// process search path and a trusted-certificate file.
// Factory 从可通过进程搜索路径解析的驱动二进制与受信证书文件构造会话。
type Factory func(ctx context.Context, opts Options) (Driver, error)

// Options configures a session.
type Options struct {
	// Headless toggles whether the browser runs without a window.
	Headless bool

	// DriverPath points at the browser-driver binary; empty means the
	// binary is resolved via the process search path.
	// DriverPath 指向浏览器驱动二进制；为空表示通过进程搜索路径解析。
	DriverPath string

	// CACertPath is the trusted-certificate file for intercepted traffic.
	CACertPath string

	// PageLoadTimeout bounds each navigation.
	PageLoadTimeout time.Duration

	// IgnoreSuffixes lists request path suffixes the session should not
	// fetch (images by default).
	// IgnoreSuffixes 列出会话不应抓取的请求路径后缀（默认为图片）。
	IgnoreSuffixes []string

	// UserAgent overrides the session's User-Agent header when non-empty.
	UserAgent string
}

// DefaultOptions mirrors the defaults scraping sessions have always used.
// DefaultOptions 与抓取会话一贯使用的默认值一致。
func DefaultOptions() Options {
	return Options{
		Headless:        true,
		PageLoadTimeout: 15 * time.Second,
		IgnoreSuffixes:  []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico"},
	}
}

// UserAgents rotates through a shuffled set of user-agent strings so
// consecutive sessions do not present identical fingerprints.
// UserAgents 在打乱顺序的 User-Agent 集合中轮换，使连续的会话不呈现
// 相同的指纹。
type UserAgents struct {
	mu     sync.Mutex
	agents []string
	next   int
}

// NewUserAgents builds a rotation over the given agents.
func NewUserAgents(agents []string) *UserAgents {
	shuffled := make([]string, len(agents))
	copy(shuffled, agents)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return &UserAgents{agents: shuffled}
}

// Next returns the next agent, cycling forever. Empty rotation returns "".
// Next 返回下一个 agent，无限循环。空轮换返回 ""。
func (u *UserAgents) Next() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.agents) == 0 {
		return ""
	}
	agent := u.agents[u.next]
	u.next = (u.next + 1) % len(u.agents)
	return agent
}
