package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// jsonOK returns an endpointResult containing an HTTP-200 along with a more
// detailed message (if desired; if none is provided it defaults to a
// generic one) that is not displayed to the client.
func jsonOK(respObj interface{}, internalMsg ...interface{}) endpointResult {
	internalMsgFmt := "OK"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}
	return jsonResponse(http.StatusOK, respObj, internalMsgFmt, msgArgs...)
}

// jsonNoContent returns an endpointResult containing an HTTP-204.
func jsonNoContent(internalMsg ...interface{}) endpointResult {
	internalMsgFmt := "no content"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}
	return jsonResponse(http.StatusNoContent, nil, internalMsgFmt, msgArgs...)
}

// jsonBadRequest returns an endpointResult containing an HTTP-400.
func jsonBadRequest(userMsg string, internalMsg ...interface{}) endpointResult {
	internalMsgFmt := "bad request"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}
	return jsonErr(http.StatusBadRequest, userMsg, internalMsgFmt, msgArgs...)
}

// jsonNotFound returns an endpointResult containing an HTTP-404.
func jsonNotFound(internalMsg ...interface{}) endpointResult {
	internalMsgFmt := "not found"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}
	return jsonErr(http.StatusNotFound, "The requested document was not found", internalMsgFmt, msgArgs...)
}

// jsonInternalServerError returns an endpointResult containing an HTTP-500.
func jsonInternalServerError(internalMsg ...interface{}) endpointResult {
	internalMsgFmt := "internal server error"
	var msgArgs []interface{}
	if len(internalMsg) >= 1 {
		internalMsgFmt = internalMsg[0].(string)
		msgArgs = internalMsg[1:]
	}
	return jsonErr(http.StatusInternalServerError, "An internal server error occurred", internalMsgFmt, msgArgs...)
}

// if status is http.StatusNoContent, respObj will not be read and may be
// nil. Otherwise, respObj MUST NOT be nil.
func jsonResponse(status int, respObj interface{}, internalMsg string, v ...interface{}) endpointResult {
	return endpointResult{
		isErr:       false,
		status:      status,
		internalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        respObj,
	}
}

func jsonErr(status int, userMsg, internalMsg string, v ...interface{}) endpointResult {
	return endpointResult{
		isErr:       true,
		status:      status,
		internalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        ErrorResponse{Error: userMsg, Status: status},
	}
}

type endpointResult struct {
	isErr       bool
	status      int
	internalMsg string
	resp        interface{}
}

func (r endpointResult) writeResponse(w http.ResponseWriter, req *http.Request, logger *zap.Logger) {
	if r.status == 0 {
		logHTTPResponse(logger, req, http.StatusInternalServerError, "endpoint result was never populated")
		http.Error(w, "An internal server error occurred", http.StatusInternalServerError)
		return
	}

	var respBytes []byte
	if r.status != http.StatusNoContent {
		var err error
		respBytes, err = json.Marshal(r.resp)
		if err != nil {
			errResult := jsonErr(http.StatusInternalServerError, "An internal server error occurred", "could not marshal JSON response: "+err.Error())
			errResult.writeResponse(w, req, logger)
			return
		}
	}

	logHTTPResponse(logger, req, r.status, r.internalMsg)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(r.status)
	if r.status != http.StatusNoContent {
		w.Write(respBytes)
	}
}

func logHTTPResponse(logger *zap.Logger, req *http.Request, status int, msg string) {
	remoteIP := strings.SplitN(req.RemoteAddr, ":", 2)[0]
	level := zap.InfoLevel
	if status >= 400 {
		level = zap.ErrorLevel
	}
	if ce := logger.Check(level, msg); ce != nil {
		ce.Write(
			zap.String("remote", remoteIP),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", status),
		)
	}
}
