package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /streams)
	CreateStream(w http.ResponseWriter, r *http.Request)
	// (POST /streams/search)
	SearchStreams(w http.ResponseWriter, r *http.Request)
	// (GET /streams/{streamId})
	GetStream(w http.ResponseWriter, r *http.Request, streamId uint64)
	// (POST /streams/{streamId}/top-up)
	TopUpStream(w http.ResponseWriter, r *http.Request, streamId uint64)
	// (POST /streams/{streamId}/pause)
	PauseStream(w http.ResponseWriter, r *http.Request, streamId uint64)
	// (POST /streams/{streamId}/resume)
	ResumeStream(w http.ResponseWriter, r *http.Request, streamId uint64)
	// (POST /streams/{streamId}/cancel)
	CancelStream(w http.ResponseWriter, r *http.Request, streamId uint64)
	// (POST /streams/{streamId}/claim)
	ClaimStream(w http.ResponseWriter, r *http.Request, streamId uint64)
	// (POST /streams/{streamId}/reclaim)
	ReclaimStream(w http.ResponseWriter, r *http.Request, streamId uint64)
	// (GET /streams/{streamId}/stats)
	GetStreamStats(w http.ResponseWriter, r *http.Request, streamId uint64)
	// (GET /streams/{streamId}/milestones)
	ListMilestones(w http.ResponseWriter, r *http.Request, streamId uint64)
	// (POST /streams/{streamId}/milestones)
	AddMilestone(w http.ResponseWriter, r *http.Request, streamId uint64)
	// (GET /users/{userId}/streams)
	ListUserStreams(w http.ResponseWriter, r *http.Request, userId string, params ListUserStreamsParams)
	// (GET /users/{userId}/stats)
	GetUserStats(w http.ResponseWriter, r *http.Request, userId string)
	// (GET /templates)
	ListTemplates(w http.ResponseWriter, r *http.Request)
	// (POST /templates)
	CreateTemplate(w http.ResponseWriter, r *http.Request)
	// (POST /templates/{templateId}/streams)
	CreateStreamFromTemplate(w http.ResponseWriter, r *http.Request, templateId uint64)
	// (GET /notifications)
	GetNotifications(w http.ResponseWriter, r *http.Request, params GetNotificationsParams)
	// (POST /notifications/{notificationId}/read)
	MarkNotificationRead(w http.ResponseWriter, r *http.Request, notificationId uint64)
	// (GET /stats)
	GetGlobalStats(w http.ResponseWriter, r *http.Request)
}

type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

// InvalidParamFormatError is passed to ErrorHandlerFunc when a parameter does not bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	handler := http.Handler(fn)
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

// bindPathID binds a required simple-style integer path parameter.
func (siw *ServerInterfaceWrapper) bindPathID(w http.ResponseWriter, r *http.Request, name string) (uint64, bool) {
	var id uint64
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return 0, false
	}
	return id, true
}

func (siw *ServerInterfaceWrapper) streamOp(op func(http.ResponseWriter, *http.Request, uint64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		streamId, ok := siw.bindPathID(w, r, "streamId")
		if !ok {
			return
		}
		siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
			op(w, r, streamId)
		})
	}
}

// CreateStream operation middleware
func (siw *ServerInterfaceWrapper) CreateStream(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.CreateStream)
}

// SearchStreams operation middleware
func (siw *ServerInterfaceWrapper) SearchStreams(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.SearchStreams)
}

// ListUserStreams operation middleware
func (siw *ServerInterfaceWrapper) ListUserStreams(w http.ResponseWriter, r *http.Request) {
	var err error

	var userId string
	err = runtime.BindStyledParameterWithOptions("simple", "userId", chi.URLParam(r, "userId"), &userId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "userId", Err: err})
		return
	}

	var params ListUserStreamsParams
	err = runtime.BindQueryParameter("form", true, false, "status", r.URL.Query(), &params.Status)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "status", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListUserStreams(w, r, userId, params)
	})
}

// GetUserStats operation middleware
func (siw *ServerInterfaceWrapper) GetUserStats(w http.ResponseWriter, r *http.Request) {
	var userId string
	err := runtime.BindStyledParameterWithOptions("simple", "userId", chi.URLParam(r, "userId"), &userId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "userId", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetUserStats(w, r, userId)
	})
}

// ListTemplates operation middleware
func (siw *ServerInterfaceWrapper) ListTemplates(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.ListTemplates)
}

// CreateTemplate operation middleware
func (siw *ServerInterfaceWrapper) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.CreateTemplate)
}

// CreateStreamFromTemplate operation middleware
func (siw *ServerInterfaceWrapper) CreateStreamFromTemplate(w http.ResponseWriter, r *http.Request) {
	templateId, ok := siw.bindPathID(w, r, "templateId")
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.CreateStreamFromTemplate(w, r, templateId)
	})
}

// GetNotifications operation middleware
func (siw *ServerInterfaceWrapper) GetNotifications(w http.ResponseWriter, r *http.Request) {
	var params GetNotificationsParams
	err := runtime.BindQueryParameter("form", true, false, "unread", r.URL.Query(), &params.Unread)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "unread", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetNotifications(w, r, params)
	})
}

// MarkNotificationRead operation middleware
func (siw *ServerInterfaceWrapper) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	notificationId, ok := siw.bindPathID(w, r, "notificationId")
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.MarkNotificationRead(w, r, notificationId)
	})
}

// GetGlobalStats operation middleware
func (siw *ServerInterfaceWrapper) GetGlobalStats(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.GetGlobalStats)
}

// Handler creates http.Handler with routing matching the API.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerFromMux creates http.Handler with routing matching the API, mounted on r.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseRouter: r,
	})
}

// HandlerWithOptions creates http.Handler with additional options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	base := options.BaseURL
	r.Group(func(r chi.Router) {
		r.Post(base+"/streams", wrapper.CreateStream)
		r.Post(base+"/streams/search", wrapper.SearchStreams)
		r.Get(base+"/streams/{streamId}", wrapper.streamOp(si.GetStream))
		r.Post(base+"/streams/{streamId}/top-up", wrapper.streamOp(si.TopUpStream))
		r.Post(base+"/streams/{streamId}/pause", wrapper.streamOp(si.PauseStream))
		r.Post(base+"/streams/{streamId}/resume", wrapper.streamOp(si.ResumeStream))
		r.Post(base+"/streams/{streamId}/cancel", wrapper.streamOp(si.CancelStream))
		r.Post(base+"/streams/{streamId}/claim", wrapper.streamOp(si.ClaimStream))
		r.Post(base+"/streams/{streamId}/reclaim", wrapper.streamOp(si.ReclaimStream))
		r.Get(base+"/streams/{streamId}/stats", wrapper.streamOp(si.GetStreamStats))
		r.Get(base+"/streams/{streamId}/milestones", wrapper.streamOp(si.ListMilestones))
		r.Post(base+"/streams/{streamId}/milestones", wrapper.streamOp(si.AddMilestone))
		r.Get(base+"/users/{userId}/streams", wrapper.ListUserStreams)
		r.Get(base+"/users/{userId}/stats", wrapper.GetUserStats)
		r.Get(base+"/templates", wrapper.ListTemplates)
		r.Post(base+"/templates", wrapper.CreateTemplate)
		r.Post(base+"/templates/{templateId}/streams", wrapper.CreateStreamFromTemplate)
		r.Get(base+"/notifications", wrapper.GetNotifications)
		r.Post(base+"/notifications/{notificationId}/read", wrapper.MarkNotificationRead)
		r.Get(base+"/stats", wrapper.GetGlobalStats)
	})

	return r
}
