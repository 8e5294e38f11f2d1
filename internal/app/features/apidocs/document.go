// internal/app/features/apidocs/document.go
package apidocs

import (
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	tagCourses = "Cursos"
	tagUsers   = "Usuarios"

	refCourse      = "#/components/schemas/Curso"
	refCourseInput = "#/components/schemas/CursoEntrada"
	refUser        = "#/components/schemas/Usuario"
	refUserInput   = "#/components/schemas/UsuarioEntrada"
	refUserView    = "#/components/schemas/UsuarioListado"
	refError       = "#/components/schemas/Error"
)

// Build returns the OpenAPI description of the REST API. Paths are relative
// to the single server, publicBaseURL + "/api".
func Build(publicBaseURL string) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "API de Cursos y Usuarios",
			Description: "Gestión de cursos, usuarios y sus inscripciones.",
			Version:     "1.0.0",
		},
		Servers: openapi3.Servers{
			&openapi3.Server{URL: strings.TrimRight(publicBaseURL, "/") + "/api"},
		},
		Tags: openapi3.Tags{
			&openapi3.Tag{Name: tagCourses, Description: "Operaciones sobre cursos"},
			&openapi3.Tag{Name: tagUsers, Description: "Operaciones sobre usuarios"},
		},
		Components: &openapi3.Components{Schemas: schemas()},
		Paths:      openapi3.NewPaths(),
	}

	addCoursePaths(doc.Paths)
	addUserPaths(doc.Paths)
	return doc
}

func schemas() openapi3.Schemas {
	id := openapi3.NewStringSchema().WithPattern("^[0-9a-fA-F]{24}$")

	course := openapi3.NewObjectSchema().
		WithProperty("_id", id).
		WithProperty("titulo", openapi3.NewStringSchema()).
		WithProperty("descripcion", openapi3.NewStringSchema()).
		WithProperty("estado", openapi3.NewBoolSchema()).
		WithProperty("imagen", openapi3.NewStringSchema().WithFormat("uri")).
		WithProperty("alumnos", openapi3.NewIntegerSchema().WithMin(0)).
		WithProperty("calificacion", openapi3.NewFloat64Schema().WithMin(0).WithMax(5))

	courseInput := openapi3.NewObjectSchema().
		WithProperty("titulo", openapi3.NewStringSchema().WithMinLength(1).WithMaxLength(200)).
		WithProperty("descripcion", openapi3.NewStringSchema().WithMinLength(1).WithMaxLength(2000)).
		WithProperty("imagen", openapi3.NewStringSchema().WithFormat("uri")).
		WithProperty("calificacion", openapi3.NewFloat64Schema().WithMin(0).WithMax(5))
	courseInput.Required = []string{"titulo", "descripcion"}

	user := openapi3.NewObjectSchema().
		WithProperty("_id", id).
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("nombre", openapi3.NewStringSchema()).
		WithProperty("estado", openapi3.NewBoolSchema()).
		WithProperty("imagen", openapi3.NewStringSchema().WithFormat("uri")).
		WithProperty("cursos", openapi3.NewArraySchema().WithItems(id))

	userInput := openapi3.NewObjectSchema().
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("nombre", openapi3.NewStringSchema().WithPattern("^[A-Za-záéíóúÁÉÍÓÚñÑüÜ ]{3,30}$")).
		WithProperty("password", openapi3.NewStringSchema().WithPattern("^[a-zA-Z0-9]{3,30}$")).
		WithProperty("imagen", openapi3.NewStringSchema().WithFormat("uri")).
		WithProperty("cursos", openapi3.NewArraySchema().WithItems(id))
	userInput.Required = []string{"email", "nombre", "password"}

	userView := openapi3.NewObjectSchema().
		WithProperty("_id", id).
		WithProperty("email", openapi3.NewStringSchema()).
		WithProperty("nombre", openapi3.NewStringSchema()).
		WithProperty("estado", openapi3.NewBoolSchema()).
		WithProperty("imagen", openapi3.NewStringSchema()).
		WithProperty("cursos", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))

	errBody := openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema()).
		WithProperty("details", openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema()))

	return openapi3.Schemas{
		"Curso":          openapi3.NewSchemaRef("", course),
		"CursoEntrada":   openapi3.NewSchemaRef("", courseInput),
		"Usuario":        openapi3.NewSchemaRef("", user),
		"UsuarioEntrada": openapi3.NewSchemaRef("", userInput),
		"UsuarioListado": openapi3.NewSchemaRef("", userView),
		"Error":          openapi3.NewSchemaRef("", errBody),
	}
}

func addCoursePaths(paths *openapi3.Paths) {
	idParam := pathParam("id", "Identificador único del curso.")
	enrolled := openapi3.NewArraySchema().WithItems(openapi3.NewObjectSchema().
		WithProperty("_id", openapi3.NewStringSchema()).
		WithProperty("nombre", openapi3.NewStringSchema()).
		WithProperty("email", openapi3.NewStringSchema()))

	paths.Set("/cursos", &openapi3.PathItem{
		Get: operation(tagCourses, "listarCursosActivos", "Lista todos los cursos activos", nil,
			ok(http.StatusOK, "Lista de cursos", arrayOf(refCourse))),
		Post: operation(tagCourses, "crearCurso", "Crear un curso", body(refCourseInput),
			ok(http.StatusCreated, "Curso creado", wrapped("curso", refCourse)), fail(http.StatusBadRequest)),
	})
	paths.Set("/cursos/coleccion", &openapi3.PathItem{
		Post: operation(tagCourses, "crearCursos", "Crear varios cursos", bodySchema(arrayOf(refCourseInput)),
			ok(http.StatusCreated, "Cursos creados", arrayOf(refCourse)), fail(http.StatusBadRequest)),
	})
	paths.Set("/cursos/{id}", &openapi3.PathItem{
		Parameters: openapi3.Parameters{idParam},
		Get: operation(tagCourses, "obtenerCurso", "Obtener curso por Id", nil,
			ok(http.StatusOK, "Curso encontrado", ref(refCourse)), fail(http.StatusNotFound)),
		Put: operation(tagCourses, "actualizarCurso", "Actualizar un curso", body(refCourseInput),
			ok(http.StatusOK, "Curso actualizado", ref(refCourse)), fail(http.StatusBadRequest), fail(http.StatusNotFound)),
		Delete: operation(tagCourses, "desactivarCurso", "Desactivar un curso", nil,
			ok(http.StatusOK, "Curso desactivado", ref(refCourse)), fail(http.StatusNotFound)),
	})
	paths.Set("/cursos/{id}/usuarios", &openapi3.PathItem{
		Parameters: openapi3.Parameters{idParam},
		Get: operation(tagCourses, "obtenerUsuariosPorCurso", "Obtener los usuarios para un curso", nil,
			ok(http.StatusOK, "Lista de usuarios para el curso", openapi3.NewSchemaRef("", enrolled)), fail(http.StatusNotFound)),
	})
}

func addUserPaths(paths *openapi3.Paths) {
	emailParam := pathParam("email", "Correo electrónico del usuario.")

	patch := openapi3.NewObjectSchema().
		WithProperty("nombre", openapi3.NewStringSchema()).
		WithProperty("password", openapi3.NewStringSchema()).
		WithProperty("estado", openapi3.NewBoolSchema()).
		WithProperty("imagen", openapi3.NewStringSchema()).
		WithProperty("cursos", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))

	add := openapi3.NewObjectSchema().
		WithProperty("cursos", openapi3.NewArraySchema().WithMinItems(1).WithItems(openapi3.NewStringSchema()))
	add.Required = []string{"cursos"}

	skipped := openapi3.NewObjectSchema().
		WithProperty("email", openapi3.NewStringSchema()).
		WithProperty("reason", openapi3.NewStringSchema().WithEnum("duplicate", "invalid")).
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("details", openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema()))
	bulk := openapi3.NewObjectSchema().
		WithPropertyRef("creados", arrayOf(refUser)).
		WithProperty("omitidos", openapi3.NewArraySchema().WithItems(skipped)).
		WithProperty("total_creados", openapi3.NewIntegerSchema()).
		WithProperty("total_omitidos", openapi3.NewIntegerSchema())

	paths.Set("/usuarios", &openapi3.PathItem{
		Get: operation(tagUsers, "listarUsuariosActivos", "Lista los usuarios activos con los títulos de sus cursos", nil,
			ok(http.StatusOK, "Lista de usuarios", arrayOf(refUserView))),
		Post: operation(tagUsers, "crearUsuario", "Crear un usuario", body(refUserInput),
			ok(http.StatusCreated, "Usuario creado", wrapped("valor", refUser)), fail(http.StatusBadRequest), fail(http.StatusNotFound)),
	})
	paths.Set("/usuarios/coleccion", &openapi3.PathItem{
		Post: operation(tagUsers, "crearUsuarios", "Crear varios usuarios", bodySchema(arrayOf(refUserInput)),
			ok(http.StatusCreated, "Resultado de la carga", openapi3.NewSchemaRef("", bulk)), fail(http.StatusBadRequest)),
	})
	paths.Set("/usuarios/{email}", &openapi3.PathItem{
		Parameters: openapi3.Parameters{emailParam},
		Put: operation(tagUsers, "actualizarUsuario", "Actualizar un usuario", bodySchema(openapi3.NewSchemaRef("", patch)),
			ok(http.StatusOK, "Usuario actualizado", wrapped("valor", refUser)), fail(http.StatusBadRequest), fail(http.StatusNotFound)),
		Delete: operation(tagUsers, "desactivarUsuario", "Desactivar un usuario", nil,
			ok(http.StatusOK, "Usuario desactivado", wrapped("usuario", refUser)), fail(http.StatusNotFound)),
	})
	paths.Set("/usuarios/{email}/cursos", &openapi3.PathItem{
		Parameters: openapi3.Parameters{emailParam},
		Post: operation(tagUsers, "agregarCursos", "Agregar cursos a un usuario", bodySchema(openapi3.NewSchemaRef("", add)),
			ok(http.StatusOK, "Usuario actualizado", wrapped("valor", refUser)), fail(http.StatusBadRequest), fail(http.StatusNotFound)),
	})
	paths.Set("/usuarios/{usuarioId}/cursos", &openapi3.PathItem{
		Parameters: openapi3.Parameters{pathParam("usuarioId", "Identificador único del usuario.")},
		Get: operation(tagUsers, "listarCursosDeUsuario", "Obtener los cursos de un usuario", nil,
			ok(http.StatusOK, "Cursos del usuario", arrayOf(refCourse)), fail(http.StatusBadRequest), fail(http.StatusNotFound)),
	})
}

type response struct {
	status int
	ref    *openapi3.ResponseRef
}

func operation(tag, id, summary string, req *openapi3.RequestBodyRef, responses ...response) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.Tags = []string{tag}
	op.OperationID = id
	op.Summary = summary
	op.RequestBody = req
	opts := make([]openapi3.NewResponsesOption, 0, len(responses))
	for _, r := range responses {
		opts = append(opts, openapi3.WithStatus(r.status, r.ref))
	}
	op.Responses = openapi3.NewResponses(opts...)
	return op
}

func ok(status int, desc string, schema *openapi3.SchemaRef) response {
	return response{status: status, ref: &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(desc).WithJSONSchemaRef(schema),
	}}
}

func fail(status int) response {
	return response{status: status, ref: &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(http.StatusText(status)).WithJSONSchemaRef(ref(refError)),
	}}
}

func body(schemaRef string) *openapi3.RequestBodyRef {
	return bodySchema(ref(schemaRef))
}

func bodySchema(schema *openapi3.SchemaRef) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(schema),
	}
}

func pathParam(name, desc string) *openapi3.ParameterRef {
	p := openapi3.NewPathParameter(name).WithSchema(openapi3.NewStringSchema())
	p.Description = desc
	return &openapi3.ParameterRef{Value: p}
}

func ref(r string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef(r, nil)
}

func arrayOf(r string) *openapi3.SchemaRef {
	s := openapi3.NewArraySchema()
	s.Items = ref(r)
	return openapi3.NewSchemaRef("", s)
}

func wrapped(key, r string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("", openapi3.NewObjectSchema().WithPropertyRef(key, ref(r)))
}
