/*
Package viewmodel provides building blocks for view-models managed by navkit.

View-models satisfy the capability interfaces of package domain directly;
nothing here is mandatory. Base supplies a terminal disposed flag with
cleanup callbacks, As projects type-erased navigation parameters into the type
a view-model expects, and Shell is the root view-model that mirrors the
navigation store for a rendering layer.

	type EditUser struct {
		viewmodel.Base
		id int
	}

	func (vm *EditUser) Initialize(params any) error {
		id, err := viewmodel.As[int](params)
		if err != nil {
			return err
		}
		vm.id = id
		return nil
	}
*/
package viewmodel
