package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, importHandler *ImportHandler, memberHandler *MemberHandler) {
	server.POST("/api/v1/imports/armember", importHandler.RunImport)
	server.GET("/api/v1/imports/armember/preview", importHandler.PreviewImport)
	server.GET("/api/v1/members/:user_id", memberHandler.GetMemberByUserID)
}
