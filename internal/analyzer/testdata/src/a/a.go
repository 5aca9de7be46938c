package a

type UserManager struct{} // want `Class name UserManager is forbidden as it contains: Manager`

type TaskManagerHelper interface { // want `Class name TaskManagerHelper is forbidden as it contains: Manager, Helper`
	Run()
}

type Repository struct{}

type managerID string

var config = struct{ Name string }{Name: "anonymous declarations are never reported"}
