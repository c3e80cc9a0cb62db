package fem

import "errors"

var (
	// ErrInvalidConfig reports plate or mesh parameters that cannot be meshed
	ErrInvalidConfig = errors.New("invalid plate configuration")

	// ErrSingularSystem reports a global system that cannot be solved, usually
	// because the supports leave rigid body modes
	ErrSingularSystem = errors.New("singular global stiffness matrix")

	// ErrNotMeshed is returned when an operation needs CreateMesh first
	ErrNotMeshed = errors.New("mesh has not been created")

	// ErrNotCalculated is returned by result queries before Calculate succeeds
	ErrNotCalculated = errors.New("analysis has not been calculated")
)
