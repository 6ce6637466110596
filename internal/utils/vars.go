package utils

import "time"

const DefaultAppID uint32 = 667970 // VTOL VR
const DefaultPollInterval = 10 * time.Millisecond
const DefaultHTTPTimeout = 60 * time.Second
const DefaultRetryWaitMin = 500 * time.Millisecond
const ToolUserAgent = "workshopdl/1337"

var WorkshopDLVersion = "dev"
