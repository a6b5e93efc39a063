//go:build windows

package window

import (
	"fmt"
	"image"
	"strings"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procEnumWindows              = user32.NewProc("EnumWindows")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetClassNameW            = user32.NewProc("GetClassNameW")
	procGetWindowThreadProcessID = user32.NewProc("GetWindowThreadProcessId")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procShowWindow               = user32.NewProc("ShowWindow")
	procSetForegroundWindow      = user32.NewProc("SetForegroundWindow")
	procSendInput                = user32.NewProc("SendInput")
	procSetCursorPos             = user32.NewProc("SetCursorPos")
	procGetClientRect            = user32.NewProc("GetClientRect")
	procClientToScreen           = user32.NewProc("ClientToScreen")
	procGetDC                    = user32.NewProc("GetDC")
	procReleaseDC                = user32.NewProc("ReleaseDC")
	procPrintWindow              = user32.NewProc("PrintWindow")

	procCreateCompatibleDC     = gdi32.NewProc("CreateCompatibleDC")
	procCreateCompatibleBitmap = gdi32.NewProc("CreateCompatibleBitmap")
	procSelectObject           = gdi32.NewProc("SelectObject")
	procBitBlt                 = gdi32.NewProc("BitBlt")
	procGetDIBits              = gdi32.NewProc("GetDIBits")
	procDeleteObject           = gdi32.NewProc("DeleteObject")
	procDeleteDC               = gdi32.NewProc("DeleteDC")
)

const (
	swRestore = 9

	inputMouse    = 0
	inputKeyboard = 1

	keyeventfKeyUp   = 0x0002
	keyeventfUnicode = 0x0004

	mouseeventfLeftDown = 0x0002
	mouseeventfLeftUp   = 0x0004

	pwClientOnly        = 0x1
	pwRenderFullContent = 0x2
	srcCopy             = 0x00CC0020
	dibRGBColors        = 0
	biRGB               = 0
)

type point struct {
	X, Y int32
}

type keybdInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

// keyboardInput is an INPUT holding a KEYBDINPUT, padded to the
// size of the union's largest member.
type keyboardInput struct {
	typ uint32
	ki  keybdInput
	_   [8]byte
}

type mouseInput struct {
	typ uint32
	mi  struct {
		dx, dy      int32
		mouseData   uint32
		dwFlags     uint32
		time        uint32
		dwExtraInfo uintptr
	}
}

type bitmapInfoHeader struct {
	biSize          uint32
	biWidth         int32
	biHeight        int32
	biPlanes        uint16
	biBitCount      uint16
	biCompression   uint32
	biSizeImage     uint32
	biXPelsPerMeter int32
	biYPelsPerMeter int32
	biClrUsed       uint32
	biClrImportant  uint32
}

type bitmapInfo struct {
	header bitmapInfoHeader
	colors [1]uint32
}

// desktop drives the Windows desktop session through user32 and
// gdi32.
type desktop struct {
	launcher
	interval time.Duration
	keyDelay time.Duration
}

// New returns the Controller for the current platform. interval
// is the delay between window polls.
func New(interval time.Duration) (Controller, error) {
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedPlatform, err)
	}
	return &desktop{interval: interval, keyDelay: 50 * time.Millisecond}, nil
}

var (
	enumMu       sync.Mutex
	enumFound    []Info
	enumCallback = windows.NewCallback(func(hwnd, _ uintptr) uintptr {
		enumFound = append(enumFound, describe(hwnd))
		return 1 // continue enumeration
	})
)

func describe(hwnd uintptr) Info {
	buf := make([]uint16, 256)
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	title := windows.UTF16ToString(buf[:n])

	n, _, _ = procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	class := windows.UTF16ToString(buf[:n])

	var pid uint32
	procGetWindowThreadProcessID.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	visible, _, _ := procIsWindowVisible.Call(hwnd)

	return Info{
		Handle:  Handle(hwnd),
		Title:   title,
		Class:   class,
		Pid:     int(pid),
		Visible: visible != 0,
	}
}

func enumerate() ([]Info, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumFound = enumFound[:0]
	r, _, err := procEnumWindows.Call(enumCallback, 0)
	if r == 0 {
		return nil, fmt.Errorf("window: EnumWindows: %w", err)
	}
	out := make([]Info, len(enumFound))
	copy(out, enumFound)
	return out, nil
}

func (d *desktop) FindWindow(p *Process, m Matcher, timeout time.Duration) (Handle, error) {
	return findWindow(enumerate, p, m, timeout, d.interval)
}

func (d *desktop) Focus(h Handle) error {
	procShowWindow.Call(uintptr(h), swRestore)
	// Windows only lets the process that received the last input
	// event steal the foreground, so tap alt first.
	if err := d.sendKey(vkMenu, false); err != nil {
		return err
	}
	if err := d.sendKey(vkMenu, true); err != nil {
		return err
	}
	if r, _, err := procSetForegroundWindow.Call(uintptr(h)); r == 0 {
		return fmt.Errorf("window: SetForegroundWindow: %w", err)
	}
	time.Sleep(d.keyDelay)
	return nil
}

func (d *desktop) sendKey(vk uint16, up bool) error {
	in := keyboardInput{typ: inputKeyboard}
	in.ki.wVk = vk
	if up {
		in.ki.dwFlags = keyeventfKeyUp
	}
	return sendInput(unsafe.Pointer(&in), unsafe.Sizeof(in))
}

func sendInput(in unsafe.Pointer, size uintptr) error {
	r, _, err := procSendInput.Call(1, uintptr(in), size)
	if r != 1 {
		return fmt.Errorf("window: SendInput: %w", err)
	}
	return nil
}

func (d *desktop) SendKeys(h Handle, keys ...Key) error {
	for _, key := range keys {
		codes, err := virtualKeys(key)
		if err != nil {
			return err
		}
		for _, vk := range codes {
			if err := d.sendKey(vk, false); err != nil {
				return err
			}
		}
		for i := len(codes) - 1; i >= 0; i-- {
			if err := d.sendKey(codes[i], true); err != nil {
				return err
			}
		}
		time.Sleep(d.keyDelay)
	}
	return nil
}

func (d *desktop) TypeText(h Handle, s string) error {
	for _, c := range windows.StringToUTF16(s) {
		if c == 0 {
			break
		}
		for _, flags := range []uint32{keyeventfUnicode, keyeventfUnicode | keyeventfKeyUp} {
			in := keyboardInput{typ: inputKeyboard}
			in.ki.wScan = c
			in.ki.dwFlags = flags
			if err := sendInput(unsafe.Pointer(&in), unsafe.Sizeof(in)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *desktop) Click(h Handle, x, y int) error {
	pt := point{X: int32(x), Y: int32(y)}
	if r, _, err := procClientToScreen.Call(uintptr(h), uintptr(unsafe.Pointer(&pt))); r == 0 {
		return fmt.Errorf("window: ClientToScreen: %w", err)
	}
	if r, _, err := procSetCursorPos.Call(uintptr(pt.X), uintptr(pt.Y)); r == 0 {
		return fmt.Errorf("window: SetCursorPos: %w", err)
	}
	for _, flags := range []uint32{mouseeventfLeftDown, mouseeventfLeftUp} {
		in := mouseInput{typ: inputMouse}
		in.mi.dwFlags = flags
		if err := sendInput(unsafe.Pointer(&in), unsafe.Sizeof(in)); err != nil {
			return err
		}
	}
	time.Sleep(d.keyDelay)
	return nil
}

// paint renders the client area of h into bmp. bmp is deselected
// from memDC again before returning, as GetDIBits requires.
func paint(h Handle, hdc, memDC, bmp uintptr, w, ht int) error {
	old, _, _ := procSelectObject.Call(memDC, bmp)
	defer procSelectObject.Call(memDC, old)

	if r, _, _ := procPrintWindow.Call(uintptr(h), memDC, pwClientOnly|pwRenderFullContent); r == 0 {
		if r, _, err := procBitBlt.Call(memDC, 0, 0, uintptr(w), uintptr(ht), hdc, 0, 0, srcCopy); r == 0 {
			return fmt.Errorf("window: BitBlt: %w", err)
		}
	}
	return nil
}

func (d *desktop) Capture(h Handle) (image.Image, error) {
	var rect windows.Rect
	if r, _, err := procGetClientRect.Call(uintptr(h), uintptr(unsafe.Pointer(&rect))); r == 0 {
		return nil, fmt.Errorf("window: GetClientRect: %w", err)
	}
	w, ht := int(rect.Right-rect.Left), int(rect.Bottom-rect.Top)
	if w <= 0 || ht <= 0 {
		return nil, fmt.Errorf("window: client area of %#x is empty", uintptr(h))
	}

	hdc, _, _ := procGetDC.Call(uintptr(h))
	if hdc == 0 {
		return nil, fmt.Errorf("window: GetDC failed for %#x", uintptr(h))
	}
	defer procReleaseDC.Call(uintptr(h), hdc)

	memDC, _, _ := procCreateCompatibleDC.Call(hdc)
	defer procDeleteDC.Call(memDC)
	bmp, _, _ := procCreateCompatibleBitmap.Call(hdc, uintptr(w), uintptr(ht))
	defer procDeleteObject.Call(bmp)
	if err := paint(h, hdc, memDC, bmp, w, ht); err != nil {
		return nil, err
	}

	bi := bitmapInfo{header: bitmapInfoHeader{
		biWidth:       int32(w),
		biHeight:      -int32(ht), // top-down rows
		biPlanes:      1,
		biBitCount:    32,
		biCompression: biRGB,
	}}
	bi.header.biSize = uint32(unsafe.Sizeof(bi.header))

	img := image.NewNRGBA(image.Rect(0, 0, w, ht))
	if r, _, err := procGetDIBits.Call(memDC, bmp, 0, uintptr(ht), uintptr(unsafe.Pointer(&img.Pix[0])), uintptr(unsafe.Pointer(&bi)), dibRGBColors); r == 0 {
		return nil, fmt.Errorf("window: GetDIBits: %w", err)
	}

	// BGRX to RGBA
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+2] = img.Pix[i+2], img.Pix[i]
		img.Pix[i+3] = 0xFF
	}
	return img, nil
}

const (
	vkBack    = 0x08
	vkTab     = 0x09
	vkReturn  = 0x0D
	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12
	vkEscape  = 0x1B
	vkSpace   = 0x20
	vkLeft    = 0x25
	vkUp      = 0x26
	vkRight   = 0x27
	vkDown    = 0x28
	vkF1      = 0x70
)

var namedKeys = map[string]uint16{
	"backspace": vkBack,
	"tab":       vkTab,
	"enter":     vkReturn,
	"shift":     vkShift,
	"ctrl":      vkControl,
	"alt":       vkMenu,
	"esc":       vkEscape,
	"space":     vkSpace,
	"left":      vkLeft,
	"up":        vkUp,
	"right":     vkRight,
	"down":      vkDown,
}

// virtualKeys resolves a Key into virtual key codes, modifiers
// first.
func virtualKeys(key Key) ([]uint16, error) {
	var codes []uint16
	for _, part := range strings.Split(strings.ToLower(string(key)), "+") {
		vk, ok := namedKeys[part]
		switch {
		case ok:
		case len(part) == 1 && part[0] >= 'a' && part[0] <= 'z':
			vk = uint16(part[0] - 'a' + 'A')
		case len(part) == 1 && part[0] >= '0' && part[0] <= '9':
			vk = uint16(part[0])
		case len(part) >= 2 && part[0] == 'f':
			var n int
			if _, err := fmt.Sscanf(part[1:], "%d", &n); err != nil || n < 1 || n > 24 {
				return nil, fmt.Errorf("window: unknown key %q", key)
			}
			vk = uint16(vkF1 + n - 1)
		default:
			return nil, fmt.Errorf("window: unknown key %q", key)
		}
		codes = append(codes, vk)
	}
	return codes, nil
}
