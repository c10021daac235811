//go:build windows

package indicator

import (
	"log/slog"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterClassExW           = user32.NewProc("RegisterClassExW")
	procCreateWindowExW            = user32.NewProc("CreateWindowExW")
	procDestroyWindow              = user32.NewProc("DestroyWindow")
	procDefWindowProcW             = user32.NewProc("DefWindowProcW")
	procShowWindow                 = user32.NewProc("ShowWindow")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	procEnumDisplayMonitors        = user32.NewProc("EnumDisplayMonitors")
	procGetDC                      = user32.NewProc("GetDC")
	procReleaseDC                  = user32.NewProc("ReleaseDC")
	procFillRect                   = user32.NewProc("FillRect")
	procDrawTextW                  = user32.NewProc("DrawTextW")
	procPeekMessageW               = user32.NewProc("PeekMessageW")
	procTranslateMessage           = user32.NewProc("TranslateMessage")
	procDispatchMessageW           = user32.NewProc("DispatchMessageW")

	procCreateSolidBrush = gdi32.NewProc("CreateSolidBrush")
	procDeleteObject     = gdi32.NewProc("DeleteObject")
	procCreateFontW      = gdi32.NewProc("CreateFontW")
	procSelectObject     = gdi32.NewProc("SelectObject")
	procSetTextColor     = gdi32.NewProc("SetTextColor")
	procSetBkMode        = gdi32.NewProc("SetBkMode")

	procGetModuleHandleW = kernel32.NewProc("GetModuleHandleW")
)

const (
	wsPopup          = 0x80000000
	wsExLayered      = 0x00080000
	wsExTransparent  = 0x00000020
	wsExTopmost      = 0x00000008
	wsExToolWindow   = 0x00000080
	wsExNoActivate   = 0x08000000
	swShowNoActivate = 4
	lwaAlpha         = 0x00000002
	pmRemove         = 0x0001
	fwBold           = 700
	bkTransparent    = 1
	dtCenter         = 0x00000001
	dtVCenter        = 0x00000004
	dtSingleLine     = 0x00000020

	overlaySize    = 160
	overlayMargin  = 20
	overlayAlpha   = 179 // ~70% opaque, same as the wx original
	overlayClass   = "DodoIndicator"
	overlayFontPts = 96
)

type wndClassExW struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   windows.Handle
	Icon       windows.Handle
	Cursor     windows.Handle
	Background windows.Handle
	MenuName   *uint16
	ClassName  *uint16
	IconSm     windows.Handle
}

type rect struct {
	Left, Top, Right, Bottom int32
}

type point struct {
	X, Y int32
}

type msg struct {
	HWnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point
}

// overlay flashes the destination desktop number on every monitor. One
// goroutine owns all window handles for the lifetime of a flash; a new
// flash cancels the previous one.
type overlay struct {
	notifier
	duration time.Duration
	enabled  bool

	mu     sync.Mutex
	cancel chan struct{}

	classOnce sync.Once
	className *uint16
}

func newPlatform(opts Options) Indicator {
	return &overlay{
		notifier: notifier{enabled: opts.Notifications},
		duration: opts.Duration,
		enabled:  opts.Overlay,
	}
}

func (o *overlay) ShowDesktop(index int) {
	if !o.enabled {
		return
	}

	o.mu.Lock()
	if o.cancel != nil {
		close(o.cancel)
	}
	cancel := make(chan struct{})
	o.cancel = cancel
	o.mu.Unlock()

	go o.flash(label(index), cancel)
}

func (o *overlay) flash(text string, cancel <-chan struct{}) {
	// Win32 windows only receive messages on the thread that created them.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	o.classOnce.Do(o.registerClass)
	if o.className == nil {
		return
	}

	var hwnds []uintptr
	for _, m := range monitors() {
		hwnd := o.createWindow(m)
		if hwnd == 0 {
			continue
		}
		paintNumber(hwnd, text)
		hwnds = append(hwnds, hwnd)
	}
	if len(hwnds) == 0 {
		return
	}
	defer func() {
		for _, hwnd := range hwnds {
			procDestroyWindow.Call(hwnd)
		}
	}()

	// DefWindowProc owns WM_PAINT, so the number is redrawn every pump tick
	// to survive invalidation.
	deadline := time.Now().Add(o.duration)
	var m msg
	for time.Now().Before(deadline) {
		select {
		case <-cancel:
			return
		default:
		}
		for {
			ret, _, _ := procPeekMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmRemove)
			if ret == 0 {
				break
			}
			procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
			procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
		}
		for _, hwnd := range hwnds {
			paintNumber(hwnd, text)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func (o *overlay) registerClass() {
	name, err := windows.UTF16PtrFromString(overlayClass)
	if err != nil {
		return
	}
	instance, _, _ := procGetModuleHandleW.Call(0)

	wc := wndClassExW{
		Size:      uint32(unsafe.Sizeof(wndClassExW{})),
		WndProc:   procDefWindowProcW.Addr(),
		Instance:  windows.Handle(instance),
		ClassName: name,
	}
	atom, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc)))
	if atom == 0 {
		slog.Warn("[indicator] overlay class registration failed", "error", err)
		return
	}
	o.className = name
}

func (o *overlay) createWindow(m rect) uintptr {
	hwnd, _, _ := procCreateWindowExW.Call(
		wsExLayered|wsExTransparent|wsExTopmost|wsExToolWindow|wsExNoActivate,
		uintptr(unsafe.Pointer(o.className)),
		0,
		wsPopup,
		uintptr(m.Left+overlayMargin),
		uintptr(m.Top+overlayMargin),
		overlaySize,
		overlaySize,
		0, 0, 0, 0)
	if hwnd == 0 {
		return 0
	}
	procSetLayeredWindowAttributes.Call(hwnd, 0, overlayAlpha, lwaAlpha)
	procShowWindow.Call(hwnd, swShowNoActivate)
	return hwnd
}

func paintNumber(hwnd uintptr, text string) {
	hdc, _, _ := procGetDC.Call(hwnd)
	if hdc == 0 {
		return
	}
	defer procReleaseDC.Call(hwnd, hdc)

	area := rect{Right: overlaySize, Bottom: overlaySize}
	brush, _, _ := procCreateSolidBrush.Call(0) // black
	procFillRect.Call(hdc, uintptr(unsafe.Pointer(&area)), brush)
	procDeleteObject.Call(brush)

	font, _, _ := procCreateFontW.Call(
		uintptr(overlayFontPts), 0, 0, 0, fwBold,
		0, 0, 0, 0, 0, 0, 0, 0, 0)
	if font != 0 {
		old, _, _ := procSelectObject.Call(hdc, font)
		defer func() {
			procSelectObject.Call(hdc, old)
			procDeleteObject.Call(font)
		}()
	}
	procSetTextColor.Call(hdc, 0x00FFFFFF) // white
	procSetBkMode.Call(hdc, bkTransparent)

	utf16, err := windows.UTF16FromString(text)
	if err != nil {
		return
	}
	procDrawTextW.Call(hdc,
		uintptr(unsafe.Pointer(&utf16[0])),
		uintptr(len(utf16)-1),
		uintptr(unsafe.Pointer(&area)),
		dtCenter|dtVCenter|dtSingleLine)
}

// monitors returns each display's bounding rectangle.
func monitors() []rect {
	var out []rect
	cb := windows.NewCallback(func(hMonitor, hdc uintptr, r *rect, lparam uintptr) uintptr {
		out = append(out, *r)
		return 1
	})
	procEnumDisplayMonitors.Call(0, 0, cb, 0)
	if len(out) == 0 {
		// Headless fallback keeps the flash harmless.
		out = append(out, rect{Right: 1920, Bottom: 1080})
	}
	return out
}
