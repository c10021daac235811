//go:build windows

package vd

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
)

// Immersive shell COM identifiers, Windows 10 1809 through 21H2. The
// manager-internal IID is version dependent; Microsoft reshuffles it on
// major builds.
var (
	clsidImmersiveShell                = ole.NewGUID("{C2F03A33-21F5-47FA-B4BB-156362A2F239}")
	clsidVirtualDesktopManagerInternal = ole.NewGUID("{C5E0CDCA-7B6E-41B2-9FC4-D93975CC467B}")
	iidIVirtualDesktopManagerInternal  = ole.NewGUID("{F31574D6-B682-4CDC-BD56-1827860ABEC6}")
	clsidVirtualDesktopPinnedApps      = ole.NewGUID("{B5A399E7-1C87-46B6-88E9-FC6747B786EE}")
	iidIVirtualDesktopPinnedApps       = ole.NewGUID("{4CE81583-1E4C-4632-A621-07A53543148F}")
	iidIApplicationViewCollection      = ole.NewGUID("{1841C6D7-4F9D-42C0-AF41-8747538F10E5}")
	iidIServiceProvider                = ole.NewGUID("{6D5140C1-7436-11CE-8034-00AA006009FA}")
)

type iServiceProvider struct{ ole.IUnknown }

type iServiceProviderVtbl struct {
	ole.IUnknownVtbl
	QueryService uintptr
}

func (v *iServiceProvider) vtbl() *iServiceProviderVtbl {
	return (*iServiceProviderVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *iServiceProvider) queryService(service, iid *ole.GUID, out **ole.IUnknown) error {
	hr, _, _ := syscall.SyscallN(v.vtbl().QueryService,
		uintptr(unsafe.Pointer(v)),
		uintptr(unsafe.Pointer(service)),
		uintptr(unsafe.Pointer(iid)),
		uintptr(unsafe.Pointer(out)))
	return hrToErr("QueryService", hr)
}

type iObjectArray struct{ ole.IUnknown }

type iObjectArrayVtbl struct {
	ole.IUnknownVtbl
	GetCount uintptr
	GetAt    uintptr
}

func (v *iObjectArray) vtbl() *iObjectArrayVtbl {
	return (*iObjectArrayVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *iObjectArray) count() (int, error) {
	var n uint32
	hr, _, _ := syscall.SyscallN(v.vtbl().GetCount,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&n)))
	return int(n), hrToErr("IObjectArray.GetCount", hr)
}

func (v *iObjectArray) at(i int, iid *ole.GUID, out **ole.IUnknown) error {
	hr, _, _ := syscall.SyscallN(v.vtbl().GetAt,
		uintptr(unsafe.Pointer(v)), uintptr(i),
		uintptr(unsafe.Pointer(iid)), uintptr(unsafe.Pointer(out)))
	return hrToErr("IObjectArray.GetAt", hr)
}

type iVirtualDesktop struct{ ole.IUnknown }

type iVirtualDesktopVtbl struct {
	ole.IUnknownVtbl
	IsViewVisible uintptr
	GetID         uintptr
}

func (v *iVirtualDesktop) vtbl() *iVirtualDesktopVtbl {
	return (*iVirtualDesktopVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *iVirtualDesktop) id() (ole.GUID, error) {
	var id ole.GUID
	hr, _, _ := syscall.SyscallN(v.vtbl().GetID,
		uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(&id)))
	return id, hrToErr("IVirtualDesktop.GetID", hr)
}

type iVirtualDesktopManagerInternal struct{ ole.IUnknown }

type iVirtualDesktopManagerInternalVtbl struct {
	ole.IUnknownVtbl
	GetCount            uintptr
	MoveViewToDesktop   uintptr
	CanViewMoveDesktops uintptr
	GetCurrentDesktop   uintptr
	GetDesktops         uintptr
	GetAdjacentDesktop  uintptr
	SwitchDesktop       uintptr
	CreateDesktopW      uintptr
	RemoveDesktop       uintptr
	FindDesktop         uintptr
}

func (v *iVirtualDesktopManagerInternal) vtbl() *iVirtualDesktopManagerInternalVtbl {
	return (*iVirtualDesktopManagerInternalVtbl)(unsafe.Pointer(v.RawVTable))
}

type iApplicationViewCollection struct{ ole.IUnknown }

type iApplicationViewCollectionVtbl struct {
	ole.IUnknownVtbl
	GetViews                            uintptr
	GetViewsByZOrder                    uintptr
	GetViewsByAppUserModelID            uintptr
	GetViewForHwnd                      uintptr
	GetViewForApplication               uintptr
	GetViewForAppUserModelID            uintptr
	GetViewInFocus                      uintptr
	TryGetLastActiveVisibleView         uintptr
	RefreshCollection                   uintptr
	RegisterForApplicationViewChanges   uintptr
	UnregisterForApplicationViewChanges uintptr
}

func (v *iApplicationViewCollection) vtbl() *iApplicationViewCollectionVtbl {
	return (*iApplicationViewCollectionVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *iApplicationViewCollection) viewForHwnd(hwnd uintptr, out **ole.IUnknown) error {
	hr, _, _ := syscall.SyscallN(v.vtbl().GetViewForHwnd,
		uintptr(unsafe.Pointer(v)), hwnd, uintptr(unsafe.Pointer(out)))
	return hrToErr("GetViewForHwnd", hr)
}

type iVirtualDesktopPinnedApps struct{ ole.IUnknown }

type iVirtualDesktopPinnedAppsVtbl struct {
	ole.IUnknownVtbl
	IsAppIDPinned uintptr
	PinAppID      uintptr
	UnpinAppID    uintptr
	IsViewPinned  uintptr
	PinView       uintptr
	UnpinView     uintptr
}

func (v *iVirtualDesktopPinnedApps) vtbl() *iVirtualDesktopPinnedAppsVtbl {
	return (*iVirtualDesktopPinnedAppsVtbl)(unsafe.Pointer(v.RawVTable))
}

// comService talks to the immersive shell. All calls are serialized by the
// dispatch loop, so a single MTA initialization is enough.
type comService struct {
	mgr    *iVirtualDesktopManagerInternal
	views  *iApplicationViewCollection
	pinned *iVirtualDesktopPinnedApps
}

// NewService connects to the OS virtual desktop service. Failure here means
// the immersive shell is not running or the interface IDs do not match this
// Windows build.
func NewService() (Service, error) {
	// S_FALSE: COM already initialized on this thread.
	const sFalse = 0x00000001
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		oleErr, ok := err.(*ole.OleError)
		if !ok || oleErr.Code() != sFalse {
			return nil, fmt.Errorf("%w: CoInitializeEx: %v", ErrPlatformUnavailable, err)
		}
	}

	unk, err := ole.CreateInstance(clsidImmersiveShell, iidIServiceProvider)
	if err != nil {
		return nil, fmt.Errorf("%w: immersive shell: %v", ErrPlatformUnavailable, err)
	}
	shell := (*iServiceProvider)(unsafe.Pointer(unk))
	defer shell.Release()

	var mgrUnk, viewsUnk, pinnedUnk *ole.IUnknown
	if err := shell.queryService(clsidVirtualDesktopManagerInternal, iidIVirtualDesktopManagerInternal, &mgrUnk); err != nil {
		return nil, fmt.Errorf("%w: desktop manager: %v", ErrPlatformUnavailable, err)
	}
	if err := shell.queryService(iidIApplicationViewCollection, iidIApplicationViewCollection, &viewsUnk); err != nil {
		mgrUnk.Release()
		return nil, fmt.Errorf("%w: view collection: %v", ErrPlatformUnavailable, err)
	}
	if err := shell.queryService(clsidVirtualDesktopPinnedApps, iidIVirtualDesktopPinnedApps, &pinnedUnk); err != nil {
		mgrUnk.Release()
		viewsUnk.Release()
		return nil, fmt.Errorf("%w: pinned apps: %v", ErrPlatformUnavailable, err)
	}

	return &comService{
		mgr:    (*iVirtualDesktopManagerInternal)(unsafe.Pointer(mgrUnk)),
		views:  (*iApplicationViewCollection)(unsafe.Pointer(viewsUnk)),
		pinned: (*iVirtualDesktopPinnedApps)(unsafe.Pointer(pinnedUnk)),
	}, nil
}

func (s *comService) desktops() (*iObjectArray, error) {
	var arr *ole.IUnknown
	hr, _, _ := syscall.SyscallN(s.mgr.vtbl().GetDesktops,
		uintptr(unsafe.Pointer(s.mgr)), uintptr(unsafe.Pointer(&arr)))
	if err := hrToErr("GetDesktops", hr); err != nil {
		return nil, err
	}
	return (*iObjectArray)(unsafe.Pointer(arr)), nil
}

// desktopAt resolves a 1-based ordinal to an IVirtualDesktop. Caller
// releases the returned desktop.
func (s *comService) desktopAt(index int) (*iVirtualDesktop, error) {
	arr, err := s.desktops()
	if err != nil {
		return nil, err
	}
	defer arr.Release()

	n, err := arr.count()
	if err != nil {
		return nil, err
	}
	if index < 1 || index > n {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidIndex, index, n)
	}
	var unk *ole.IUnknown
	if err := arr.at(index-1, ole.IID_IUnknown, &unk); err != nil {
		return nil, err
	}
	return (*iVirtualDesktop)(unsafe.Pointer(unk)), nil
}

func (s *comService) Count() (int, error) {
	arr, err := s.desktops()
	if err != nil {
		return 0, err
	}
	defer arr.Release()
	return arr.count()
}

func (s *comService) Create() error {
	var out *ole.IUnknown
	hr, _, _ := syscall.SyscallN(s.mgr.vtbl().CreateDesktopW,
		uintptr(unsafe.Pointer(s.mgr)), uintptr(unsafe.Pointer(&out)))
	if err := hrToErr("CreateDesktopW", hr); err != nil {
		return err
	}
	out.Release()
	return nil
}

func (s *comService) Current() (int, error) {
	var curUnk *ole.IUnknown
	hr, _, _ := syscall.SyscallN(s.mgr.vtbl().GetCurrentDesktop,
		uintptr(unsafe.Pointer(s.mgr)), uintptr(unsafe.Pointer(&curUnk)))
	if err := hrToErr("GetCurrentDesktop", hr); err != nil {
		return 0, err
	}
	cur := (*iVirtualDesktop)(unsafe.Pointer(curUnk))
	defer cur.Release()

	curID, err := cur.id()
	if err != nil {
		return 0, err
	}

	arr, err := s.desktops()
	if err != nil {
		return 0, err
	}
	defer arr.Release()

	n, err := arr.count()
	if err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		var unk *ole.IUnknown
		if err := arr.at(i, ole.IID_IUnknown, &unk); err != nil {
			return 0, err
		}
		d := (*iVirtualDesktop)(unsafe.Pointer(unk))
		id, err := d.id()
		d.Release()
		if err != nil {
			return 0, err
		}
		if ole.IsEqualGUID(&id, &curID) {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("current desktop not in desktop list")
}

func (s *comService) SwitchTo(index int) error {
	d, err := s.desktopAt(index)
	if err != nil {
		return err
	}
	defer d.Release()

	hr, _, _ := syscall.SyscallN(s.mgr.vtbl().SwitchDesktop,
		uintptr(unsafe.Pointer(s.mgr)), uintptr(unsafe.Pointer(d)))
	return hrToErr("SwitchDesktop", hr)
}

func (s *comService) ActiveWindow() (uintptr, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	return hwnd, nil
}

func (s *comService) MoveWindow(hwnd uintptr, index int) error {
	var view *ole.IUnknown
	if err := s.views.viewForHwnd(hwnd, &view); err != nil {
		return err
	}
	defer view.Release()

	d, err := s.desktopAt(index)
	if err != nil {
		return err
	}
	defer d.Release()

	hr, _, _ := syscall.SyscallN(s.mgr.vtbl().MoveViewToDesktop,
		uintptr(unsafe.Pointer(s.mgr)),
		uintptr(unsafe.Pointer(view)),
		uintptr(unsafe.Pointer(d)))
	return hrToErr("MoveViewToDesktop", hr)
}

func (s *comService) IsPinned(hwnd uintptr) (bool, error) {
	var view *ole.IUnknown
	if err := s.views.viewForHwnd(hwnd, &view); err != nil {
		return false, err
	}
	defer view.Release()

	var pinned int32
	hr, _, _ := syscall.SyscallN(s.pinned.vtbl().IsViewPinned,
		uintptr(unsafe.Pointer(s.pinned)),
		uintptr(unsafe.Pointer(view)),
		uintptr(unsafe.Pointer(&pinned)))
	return pinned != 0, hrToErr("IsViewPinned", hr)
}

func (s *comService) SetPinned(hwnd uintptr, pinned bool) error {
	var view *ole.IUnknown
	if err := s.views.viewForHwnd(hwnd, &view); err != nil {
		return err
	}
	defer view.Release()

	proc := s.pinned.vtbl().PinView
	op := "PinView"
	if !pinned {
		proc = s.pinned.vtbl().UnpinView
		op = "UnpinView"
	}
	hr, _, _ := syscall.SyscallN(proc,
		uintptr(unsafe.Pointer(s.pinned)),
		uintptr(unsafe.Pointer(view)))
	return hrToErr(op, hr)
}

func hrToErr(op string, hr uintptr) error {
	if int32(hr) < 0 {
		return fmt.Errorf("%s: %v", op, ole.NewError(hr))
	}
	return nil
}
