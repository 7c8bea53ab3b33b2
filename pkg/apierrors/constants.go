package apierrors

// Error message ids.
const (
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidPayload     = "invalidPayload"
	MsgValidationFailed   = "validationFailed"
	MsgTaskNotFound       = "taskNotFound"
	MsgForbidden          = "forbidden"
	MsgUnauthenticated    = "unauthenticated"
	MsgInvalidCredentials = "invalidCredentials"
	MsgFailListTask       = "errorListTask"
	MsgFailShowTask       = "failShowTask"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailStatistics     = "failStatistics"
	MsgFailRegister       = "failRegister"
	MsgFailLogin          = "failLogin"
	MsgFailCurrentUser    = "failCurrentUser"
)

// Success message ids.
const (
	MsgTaskCreated = "taskCreated"
	MsgTaskUpdated = "taskUpdated"
	MsgRegistered  = "registered"
	MsgLoggedIn    = "loggedIn"
	MsgLoggedOut   = "loggedOut"
)

// Field validation message ids. Templates receive Field and Param.
const (
	MsgFieldRequired          = "validationRequired"
	MsgFieldMax               = "validationMax"
	MsgFieldMin               = "validationMin"
	MsgFieldEmail             = "validationEmail"
	MsgFieldIn                = "validationIn"
	MsgFieldDate              = "validationDate"
	MsgFieldAfterOrEqualToday = "validationAfterOrEqualToday"
	MsgFieldType              = "validationType"
	MsgFieldTaken             = "validationTaken"
	MsgFieldNoFields          = "validationNoFields"
	MsgFieldInvalid           = "validationInvalid"
)
